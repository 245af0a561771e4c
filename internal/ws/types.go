package ws

const (
	// client - server
	MsgChoice = "choice"

	// server - client
	MsgCommitment = "commitment"
	MsgMenu       = "menu"
	MsgTable      = "table"
	MsgInvalid    = "invalid"
	MsgExit       = "exit"
	MsgResult     = "result"
	MsgError      = "error"
)
