package store

const (
	enqueueMutation = `
		INSERT INTO mutation_queue (
			queue_id,
			table_name,
			record_id,
			action,
			payload,
			enqueued_at,
			retry_count,
			last_error
		) VALUES (?, ?, ?, ?, ?, ?, 0, '');`

	getMutation = `
		SELECT
			queue_id,
			table_name,
			record_id,
			action,
			payload,
			enqueued_at,
			retry_count,
			last_error
		FROM mutation_queue
		WHERE queue_id = ?;`

	listPendingMutations = `
		SELECT
			queue_id,
			table_name,
			record_id,
			action,
			payload,
			enqueued_at,
			retry_count,
			last_error
		FROM mutation_queue
		ORDER BY enqueued_at ASC, queue_id ASC;`

	markMutationFailed = `
		UPDATE mutation_queue SET
			retry_count = retry_count + 1,
			last_error  = ?
		WHERE queue_id = ?;`

	removeMutation = `
		DELETE FROM mutation_queue
		WHERE queue_id = ?;`

	removeMutationsForRecord = `
		DELETE FROM mutation_queue
		WHERE table_name = ? AND record_id = ?;`

	countPendingMutations = `
		SELECT COUNT(*) FROM mutation_queue;`

	countExhaustedMutations = `
		SELECT COUNT(*) FROM mutation_queue
		WHERE retry_count >= ?;`

	purgeExhaustedMutations = `
		DELETE FROM mutation_queue
		WHERE retry_count >= ?;`

	pendingRecordIDs = `
		SELECT DISTINCT record_id FROM mutation_queue
		WHERE table_name = ?;`

	clearMutationQueue = `
		DELETE FROM mutation_queue;`

	getCursor = `
		SELECT pulled_at FROM sync_cursors
		WHERE table_name = ?;`

	setCursor = `
		INSERT INTO sync_cursors (table_name, pulled_at)
		VALUES (?, ?)
		ON CONFLICT (table_name) DO UPDATE SET pulled_at = excluded.pulled_at;`

	listCursors = `
		SELECT table_name, pulled_at FROM sync_cursors
		ORDER BY table_name ASC;`

	clearCursors = `
		DELETE FROM sync_cursors;`
)
