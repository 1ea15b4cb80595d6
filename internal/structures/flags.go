package structures

import "net/http"

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
	ViewURL    string
}

type Route struct {
	Url     string
	Handler http.Handler
}
