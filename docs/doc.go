// Package docs provides generated OpenAPI documentation.
//
// MonkeyTranslate API
//
//	@title			MonkeyTranslate API
//	@version		1.0
//	@description	Image translation API: upload pages, extract text regions, translate them, and render translated images.
//
//	@contact.name	API Support
//	@contact.url	https://github.com/monkeytranslate/monkeytranslate
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/monkeytranslate/serve.go -o ./swagger --parseDependency --parseInternal
