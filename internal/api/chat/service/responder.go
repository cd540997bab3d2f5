package chatService

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Prateesh-Sulikeri/JinBo/pkg/fuzzy"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/knowledge"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/nlp"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/profile"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/utils"
)

const (
	placeholderRepos   = "[GITHUB_REPOS]"
	placeholderCompany = "[COMPANY_NAME]"
	placeholderProject = "[PROJECT_DETAILS]"

	bachelorLevel = "Bachelor of Engineering"
)

// responseKeys maps intents whose knowledge base entry is named differently.
var responseKeys = map[nlp.Intent]string{
	nlp.IntentSkills:          "tech_stack",
	nlp.IntentLearningFirst:   "learning_first_language",
	nlp.IntentExperience:      "experience_domains",
	nlp.IntentClientWork:      "collaboration",
	nlp.IntentLearningJourney: "background",
	nlp.IntentProjects:        "projects_latest",
}

type inappropriateRule struct {
	re  *regexp.Regexp
	key string
}

// Evaluated against the raw message; the first hit wins.
var inappropriateRules = []inappropriateRule{
	{regexp.MustCompile(`(?i)hack`), "inappropriate_hacking"},
	{regexp.MustCompile(`(?i)homework`), "homework"},
	{regexp.MustCompile(`(?i)date|marry`), "dating"},
	{regexp.MustCompile(`(?i)api|password|bank`), "api_keys"},
}

// Responder turns an intent or a fuzzy hit into the final answer text.
type Responder struct {
	kb     *knowledge.Base
	picker utils.Picker
}

func NewResponder(kb *knowledge.Base, picker utils.Picker) *Responder {
	if picker == nil {
		picker = utils.NewRandomPicker()
	}
	return &Responder{kb: kb, picker: picker}
}

// Generate never returns an empty string.
func (r *Responder) Generate(intent nlp.Intent, original string, snap profile.Snapshot) string {
	text := r.render(intent, original, snap)
	if strings.TrimSpace(text) == "" {
		return r.kb.Fallback()
	}
	return text
}

func (r *Responder) render(intent nlp.Intent, original string, snap profile.Snapshot) string {
	if !intent.IsKnown() {
		return r.kb.Fallback()
	}

	switch intent {
	case nlp.IntentProjects:
		return r.projects(snap.GitHub)
	case nlp.IntentGitHub:
		return r.github(snap.GitHub)
	case nlp.IntentLeetCode:
		return r.leetcode(snap.LeetCode)
	case nlp.IntentBlogs:
		return r.blogs(snap.Medium)
	case nlp.IntentLinkedIn:
		return r.linkedin(snap.LinkedIn)
	case nlp.IntentInappropriate:
		return r.inappropriate(original)
	case nlp.IntentCGPA:
		return r.cgpa()
	case nlp.IntentDefault:
		return r.pick("default")
	}

	if key, ok := responseKeys[intent]; ok {
		return r.pick(key)
	}
	return r.pick(string(intent))
}

// FromFuzzy renders a validated fuzzy hit with its confidence disclaimer.
func (r *Responder) FromFuzzy(res fuzzy.MatchResult) string {
	var b strings.Builder
	if res.Type == fuzzy.TypePersonal {
		b.WriteString("Based on your question, here's what I found:\n\n")
	}
	b.WriteString(res.Content)
	fmt.Fprintf(&b, "\n\n⚠️ *Note: This answer was extracted from my knowledge base with %d%% confidence and may not perfectly match your question. For more accurate info, please rephrase or contact %s directly.*",
		res.Confidence, r.firstName())
	return b.String()
}

func (r *Responder) pick(key string) string {
	v, ok := r.kb.Response(key)
	if !ok {
		return ""
	}
	return v[r.picker.Intn(len(v))]
}

func (r *Responder) firstName() string {
	if f := strings.Fields(r.kb.PersonalString("name")); len(f) > 0 {
		return f[0]
	}
	return "me"
}

func (r *Responder) projects(gh *profile.GitHub) string {
	text := r.pick("projects_latest")

	repos := "Check GitHub: https://github.com/" + r.kb.Social.GitHub
	if gh != nil && len(gh.TopRepos) > 0 {
		lines := make([]string, 0, len(gh.TopRepos))
		for i, repo := range gh.TopRepos {
			lines = append(lines, fmt.Sprintf("%d. %s (%s) - %s", i+1, repo.Name, languageOrNA(repo.Language), repo.URL))
		}
		repos = strings.Join(lines, "\n")
	}

	text = strings.ReplaceAll(text, placeholderRepos, repos)
	text = strings.ReplaceAll(text, placeholderCompany, "his current company")
	text = strings.ReplaceAll(text, placeholderProject, "exciting projects")
	return text
}

func (r *Responder) github(gh *profile.GitHub) string {
	if gh == nil {
		return "Check out GitHub: https://github.com/" + r.kb.Social.GitHub
	}

	var b strings.Builder
	fmt.Fprintf(&b, "GitHub Stats for @%s:\n\n📦 %d public repositories\n⭐ %d total stars\n👥 %d followers\n💻 Top languages: %s\n\nLatest repos:\n",
		gh.Username, gh.Repos, gh.Stars, gh.Followers, gh.Languages)
	for i, repo := range gh.TopRepos {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, repo.Name, languageOrNA(repo.Language))
		if repo.Description != "" {
			fmt.Fprintf(&b, "   %s\n", repo.Description)
		}
		fmt.Fprintf(&b, "   %s\n", repo.URL)
	}
	fmt.Fprintf(&b, "\nFull profile: https://github.com/%s", gh.Username)
	return b.String()
}

func languageOrNA(lang string) string {
	if lang == "" {
		return "N/A"
	}
	return lang
}

func (r *Responder) leetcode(lc *profile.LeetCode) string {
	if lc == nil {
		return "LeetCode: https://leetcode.com/u/" + r.kb.Social.LeetCode
	}
	return fmt.Sprintf("LeetCode Stats for @%s:\n\n✅ Total Solved: %d\n🟢 Easy: %d\n🟡 Medium: %d\n🔴 Hard: %d\n\nProfile: https://leetcode.com/u/%s",
		lc.Username, lc.Total, lc.Easy, lc.Medium, lc.Hard, lc.Username)
}

func (r *Responder) blogs(md *profile.Medium) string {
	var b strings.Builder
	if md != nil && len(md.Posts) > 0 {
		b.WriteString("Latest blog posts:\n\n")
		for i, post := range md.Posts {
			fmt.Fprintf(&b, "%d. %s\n   %s\n\n", i+1, post.Title, post.Link)
		}
		b.WriteString("Read more: https://medium.com/" + r.kb.Social.Medium)
	} else {
		b.WriteString("Check out Medium: https://medium.com/" + r.kb.Social.Medium)
	}

	if freq := r.pick("blog_frequency"); freq != "" {
		b.WriteString("\n\n" + freq)
	}
	return b.String()
}

func (r *Responder) linkedin(li *profile.LinkedIn) string {
	if li == nil {
		return "LinkedIn: " + profile.LinkedInURL(r.kb.Social.LinkedIn) + "\n\nConnect for professional networking!"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "LinkedIn Profile: %s\n\n", li.ProfileURL)
	if li.Connections > 0 {
		fmt.Fprintf(&b, "🤝 %d+ connections\n", li.Connections)
	}
	if li.Followers > 0 {
		fmt.Fprintf(&b, "👥 %d followers\n\n", li.Followers)
	}
	if p := li.LatestPost; p != nil {
		fmt.Fprintf(&b, "📝 Latest Post:\n\"%s\"\n\n❤️ %d likes | 💬 %d comments | 🔄 %d shares\n", p.Text, p.Likes, p.Comments, p.Shares)
		if p.URL != "" {
			fmt.Fprintf(&b, "🔗 %s\n", p.URL)
		}
		b.WriteString("\n")
	}
	b.WriteString("Connect for professional networking!")
	return b.String()
}

func (r *Responder) inappropriate(original string) string {
	for _, rule := range inappropriateRules {
		if rule.re.MatchString(original) {
			return r.pick(rule.key)
		}
	}
	return r.kb.Fallback()
}

func (r *Responder) cgpa() string {
	edu := r.kb.EducationRecords()

	var bachelor *knowledge.Education
	for i := range edu {
		if edu[i].Level == bachelorLevel {
			bachelor = &edu[i]
			break
		}
	}
	if bachelor == nil {
		return "Education data not found in knowledge base."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Academic Performance:\n\n🎓 B.E Computer Science: %v CGPA (%v)\n", bachelor.CGPA, bachelor.Year)
	if len(edu) > 1 {
		fmt.Fprintf(&b, "📚 12th Grade: %v%% (%v)\n", edu[1].Percentage, edu[1].Year)
	}
	if len(edu) > 2 {
		fmt.Fprintf(&b, "📖 10th Grade: %v%% (%v)", edu[2].Percentage, edu[2].Year)
	}
	return strings.TrimRight(b.String(), "\n")
}
