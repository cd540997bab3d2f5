package nlp

// Intent is one member of the closed set of categories a message can be
// classified into.
type Intent string

const (
	IntentGreeting           Intent = "greeting"
	IntentAboutBot           Intent = "about_bot"
	IntentEducation          Intent = "education"
	IntentCollege            Intent = "college"
	IntentDegree             Intent = "degree"
	IntentSchooling          Intent = "schooling"
	IntentCGPA               Intent = "cgpa"
	IntentAboutCreator       Intent = "about_creator"
	IntentTechStack          Intent = "tech_stack"
	IntentSkills             Intent = "skills"
	IntentProjects           Intent = "projects"
	IntentGitHub             Intent = "github"
	IntentLeetCode           Intent = "leetcode"
	IntentBlogs              Intent = "blogs"
	IntentLinkedIn           Intent = "linkedin"
	IntentContact            Intent = "contact"
	IntentJobSeeking         Intent = "job_seeking"
	IntentResume             Intent = "resume"
	IntentLocation           Intent = "location"
	IntentPortfolioTech      Intent = "portfolio_tech"
	IntentSourceCode         Intent = "source_code"
	IntentFavoriteFrameworks Intent = "favorite_frameworks"
	IntentCollaboration      Intent = "collaboration"
	IntentClientWork         Intent = "client_work"
	IntentLearningFirst      Intent = "learning_first"
	IntentBuildPortfolio     Intent = "build_portfolio"
	IntentResources          Intent = "resources"
	IntentMentoring          Intent = "mentoring"
	IntentFreelance          Intent = "freelance"
	IntentExperience         Intent = "experience"
	IntentPricing            Intent = "pricing"
	IntentWhyDeveloper       Intent = "why_developer"
	IntentLearningJourney    Intent = "learning_journey"
	IntentOpenSource         Intent = "open_source"
	IntentPersonalInfo       Intent = "personal_info"
	IntentInappropriate      Intent = "inappropriate"

	// IntentDefault means no confident classification.
	IntentDefault Intent = "default"
)

var knownIntents = map[Intent]struct{}{
	IntentGreeting: {}, IntentAboutBot: {}, IntentEducation: {}, IntentCollege: {},
	IntentDegree: {}, IntentSchooling: {}, IntentCGPA: {}, IntentAboutCreator: {},
	IntentTechStack: {}, IntentSkills: {}, IntentProjects: {}, IntentGitHub: {},
	IntentLeetCode: {}, IntentBlogs: {}, IntentLinkedIn: {}, IntentContact: {},
	IntentJobSeeking: {}, IntentResume: {}, IntentLocation: {}, IntentPortfolioTech: {},
	IntentSourceCode: {}, IntentFavoriteFrameworks: {}, IntentCollaboration: {},
	IntentClientWork: {}, IntentLearningFirst: {}, IntentBuildPortfolio: {},
	IntentResources: {}, IntentMentoring: {}, IntentFreelance: {}, IntentExperience: {},
	IntentPricing: {}, IntentWhyDeveloper: {}, IntentLearningJourney: {},
	IntentOpenSource: {}, IntentPersonalInfo: {}, IntentInappropriate: {},
	IntentDefault: {},
}

// IsKnown reports whether i belongs to the closed intent set.
func (i Intent) IsKnown() bool {
	_, ok := knownIntents[i]
	return ok
}

func (i Intent) String() string {
	return string(i)
}

// Stage names the classifier step that produced an intent.
type Stage string

const (
	StageAnchored Stage = "anchored"
	StageOverride Stage = "override"
	StageWeighted Stage = "weighted"
	StagePattern  Stage = "pattern"
	StageNone     Stage = "none"
)

type Classification struct {
	Intent     Intent `json:"intent"`
	Stage      Stage  `json:"stage"`
	Normalized string `json:"normalized"`
}

type IClassifier interface {
	Classify(raw string) Classification
	Intents() []Intent
}
