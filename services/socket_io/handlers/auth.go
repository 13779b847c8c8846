package handlers

import (
	"log"

	"Setler/services/directory"
)

// Account commands delegate straight to the directory, which owns the
// success/failure messaging (register-success, login-fail, ...).

func HandleRegister(dir *directory.Directory, connectionID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		m, ok := payloadMap(args)
		if !ok {
			log.Printf("[REGISTER-ERROR] malformed payload from %s", connectionID)
		}
		dir.HandleCommand(directory.CmdRegister, directory.Payload{
			ConnectionID: connectionID,
			Username:     stringField(m, "username"),
			Password:     stringField(m, "password"),
		})
	}
}

func HandleLogin(dir *directory.Directory, connectionID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		m, ok := payloadMap(args)
		if !ok {
			log.Printf("[LOGIN-ERROR] malformed payload from %s", connectionID)
		}
		dir.HandleCommand(directory.CmdLogin, directory.Payload{
			ConnectionID: connectionID,
			Username:     stringField(m, "username"),
			Password:     stringField(m, "password"),
		})
	}
}

func HandleLogout(dir *directory.Directory, connectionID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		m, _ := payloadMap(args)
		dir.HandleCommand(directory.CmdLogout, directory.Payload{
			ConnectionID: connectionID,
			Username:     stringField(m, "username"),
		})
	}
}
