package consts

const (
	ApplicationName    = "Interior Request Server"
	ApplicationVersion = "v1.0.0"
)
