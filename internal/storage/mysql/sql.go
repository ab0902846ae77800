package mysql

const insertMutationSQL = `
INSERT INTO admin_mutations
  (kind, entity_id, action, outcome, http_status, message)
VALUES
  (?, ?, ?, ?, ?, ?)
`

// Newest first; served by idx_admin_mutations_created (created_at, id).
const recentMutationsSQL = `
SELECT
  id,
  kind,
  entity_id,
  action,
  outcome,
  http_status,
  message,
  created_at
FROM admin_mutations
ORDER BY created_at DESC, id DESC
LIMIT ?
`
