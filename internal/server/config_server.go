package server

import (
	"net/http"

	"profitdesk/pkg/httpx/reply"
	"profitdesk/pkg/rest"
)

// ConfigServer hands the browser glue the public auth parameters. Nothing
// secret leaves here: the anon key is designed to be public.
type ConfigServer struct {
	authURL     string
	authAnonKey string
}

func NewConfigServer(authURL, authAnonKey string) ConfigServer {
	return ConfigServer{
		authURL:     authURL,
		authAnonKey: authAnonKey,
	}
}

func (s ConfigServer) getV1PublicConfig(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, rest.PublicConfig{
		AuthURL:     s.authURL,
		AuthAnonKey: s.authAnonKey,
	})

	return nil
}
