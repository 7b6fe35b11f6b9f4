package app

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home      string             // key directory, e.g. $HOME/.libauth
	ServerURL string             // verifyd base URL, e.g. http://127.0.0.1:8080
	HTTP      *http.Client       // optional; defaults to http.DefaultClient
	Logger    logrus.FieldLogger // optional; defaults to a discarding logger
}
