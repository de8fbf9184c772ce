package request

type InstallConnector struct {
	Token string `json:"token" validate:"required"`
}

type RunCommand struct {
	Command string `json:"command" validate:"required"`
}
