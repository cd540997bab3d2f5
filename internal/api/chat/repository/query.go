package chatRepository

const (
	queryCreateChatLog = `
		INSERT INTO chat_logs (
			id,
			request_id,
			intent,
			method,
			used_fuzzy,
			confidence,
			message_length,
			created_at
		) VALUES (
			:id,
			:request_id,
			:intent,
			:method,
			:used_fuzzy,
			:confidence,
			:message_length,
			:created_at
		)
	`

	queryCountByIntent = `
		SELECT
			intent,
			COUNT(*) AS count
		FROM chat_logs
		WHERE created_at >= :since
		GROUP BY intent
		ORDER BY count DESC, intent ASC
	`
)
