package server

// Server aggregates the entity-specific HTTP servers behind one route
// registrar.
type Server struct {
	ItemServer
	SettingsServer
	SecurityServer
	ConfigServer
}

func NewServer(
	itemServer ItemServer,
	settingsServer SettingsServer,
	securityServer SecurityServer,
	configServer ConfigServer,
) Server {
	return Server{
		ItemServer:     itemServer,
		SettingsServer: settingsServer,
		SecurityServer: securityServer,
		ConfigServer:   configServer,
	}
}
