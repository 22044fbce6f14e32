package commands

const (
	_etc = "/usr/local/etc/supasheets"
	_var = "/usr/local/var/supasheets"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"
)
