package commands

const (
	_etc = "/usr/local/etc/com.github.supasheets"
	_var = "/usr/local/var/com.github.supasheets"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"
)
