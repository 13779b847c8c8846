package directory

import "fmt"

// Command is the closed set of commands the directory understands. Using a
// dedicated type instead of raw strings keeps dispatch to a single
// exhaustive switch.
type Command int

const (
	CmdConnect Command = iota
	CmdDisconnect
	CmdRegister
	CmdLogin
	CmdLogout
	CmdList
	CmdCreateGame
	CmdJoinGame
	CmdLeaveGame
	CmdStartGame
	CmdSubmitMatch
	CmdDeleteGame
)

func (c Command) String() string {
	switch c {
	case CmdConnect:
		return "connect"
	case CmdDisconnect:
		return "disconnect"
	case CmdRegister:
		return "register"
	case CmdLogin:
		return "login"
	case CmdLogout:
		return "logout"
	case CmdList:
		return "list"
	case CmdCreateGame:
		return "createGame"
	case CmdJoinGame:
		return "joinGame"
	case CmdLeaveGame:
		return "leaveGame"
	case CmdStartGame:
		return "startGame"
	case CmdSubmitMatch:
		return "submitMatch"
	case CmdDeleteGame:
		return "deleteGame"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// Payload carries the fields of an inbound command. Commands read only the
// fields they document; the rest stay zero.
type Payload struct {
	ConnectionID string
	Username     string
	Password     string
	GameID       string
	GameName     string
	Cards        []string
}
