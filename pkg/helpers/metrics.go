package helpers

import "expvar"

// Process counters exposed on /api/debug/vars.
var (
	UsersRegistered = expvar.NewInt("users_registered")
	SignInsOK       = expvar.NewInt("sign_ins_ok")
	SignInsFailed   = expvar.NewInt("sign_ins_failed")
	TasksCreated    = expvar.NewInt("tasks_created")
	TasksUpdated    = expvar.NewInt("tasks_updated")
	TasksDeleted    = expvar.NewInt("tasks_deleted")
)
