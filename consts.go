package effectlog

const emptyString = ""

const (
	errMsgNilInnerWriter = "inner writer is nil"
	errMsgBadCapacity    = "buffer capacity must be at least 1"
	errMsgConfigInvalid  = "configuration is invalid"
	errMsgWriterClosed   = "writer is closed"
)
