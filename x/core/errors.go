package core

type ErrorNotFound struct {
}

func (e ErrorNotFound) Error() string {
	return "Not Found"
}

func NewErrorNotFound() ErrorNotFound {
	return ErrorNotFound{}
}

type ErrorAlreadyExists struct {
}

func (e ErrorAlreadyExists) Error() string {
	return "Already Exists"
}

func NewErrorAlreadyExists() ErrorAlreadyExists {
	return ErrorAlreadyExists{}
}

type ErrorPermissionDenied struct {
}

func (e ErrorPermissionDenied) Error() string {
	return "Permission Denied"
}

func NewErrorPermissionDenied() ErrorPermissionDenied {
	return ErrorPermissionDenied{}
}

// ErrorPartyFull is returned when an insert or withdraw would push a
// trainer's active party past PartyLimit.
type ErrorPartyFull struct {
}

func (e ErrorPartyFull) Error() string {
	return "Party Full"
}

func NewErrorPartyFull() ErrorPartyFull {
	return ErrorPartyFull{}
}

// ErrorNoChanges is returned when an update request carries no
// recognized field.
type ErrorNoChanges struct {
}

func (e ErrorNoChanges) Error() string {
	return "No Changes"
}

func NewErrorNoChanges() ErrorNoChanges {
	return ErrorNoChanges{}
}
