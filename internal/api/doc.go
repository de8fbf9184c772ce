// Package api provides the edge identity orchestrator REST API.
//
//	@title						Edge Identity API
//	@version					1.0
//	@description				Public IP discovery, domain alias, DNS and tunnel connector API
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						X-API-Key
package api
