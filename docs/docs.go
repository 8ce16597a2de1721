// Package docs registra el documento OpenAPI servido en /swagger/doc.json.
// Se mantiene a mano en el formato de swag y sigue las anotaciones godoc de
// los handlers; al agregar o cambiar una ruta hay que tocar ambos.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["access"],
                "summary": "Login",
                "parameters": [
                    {"description": "Credenciales", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/access.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/access.loginResponse"}},
                    "401": {"description": "invalid credentials", "schema": {"type": "string"}}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["access"],
                "summary": "Logout",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["access"],
                "summary": "Owner de la sesión actual",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/owners.OwnerResponse"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            }
        },
        "/owners": {
            "get": {
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Listar owners",
                "parameters": [
                    {"type": "string", "description": "Búsqueda en nombre/email", "name": "q", "in": "query"},
                    {"type": "integer", "description": "1 admin, 2 owner", "name": "permission", "in": "query"},
                    {"type": "integer", "description": "1-500, default 100", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/owners.OwnerResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Crear owner",
                "parameters": [
                    {"description": "Datos del owner", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/owners.createOwnerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/owners.OwnerResponse"}},
                    "409": {"description": "email already registered", "schema": {"type": "string"}}
                }
            }
        },
        "/owners/{ownerID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Ver owner",
                "parameters": [{"type": "integer", "name": "ownerID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/owners.OwnerResponse"}},
                    "404": {"description": "owner not found", "schema": {"type": "string"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Editar owner",
                "parameters": [
                    {"type": "integer", "name": "ownerID", "in": "path", "required": true},
                    {"description": "Campos a modificar", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/owners.updateOwnerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/owners.OwnerResponse"}},
                    "404": {"description": "owner not found", "schema": {"type": "string"}},
                    "409": {"description": "email already registered", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "tags": ["owners"],
                "summary": "Borrar owner",
                "parameters": [{"type": "integer", "name": "ownerID", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "owner not found", "schema": {"type": "string"}},
                    "409": {"description": "owner still has cats", "schema": {"type": "string"}}
                }
            }
        },
        "/breeders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["breeders"],
                "summary": "Listar breeders",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "string", "name": "country", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/breeders.BreederResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["breeders"],
                "summary": "Crear breeder",
                "parameters": [
                    {"description": "Datos del criadero", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/breeders.createBreederRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/breeders.BreederResponse"}}
                }
            }
        },
        "/breeders/{breederID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["breeders"],
                "summary": "Ver breeder",
                "parameters": [{"type": "integer", "name": "breederID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/breeders.BreederResponse"}},
                    "404": {"description": "breeder not found", "schema": {"type": "string"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["breeders"],
                "summary": "Editar breeder",
                "parameters": [
                    {"type": "integer", "name": "breederID", "in": "path", "required": true},
                    {"description": "Campos a modificar", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/breeders.updateBreederRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/breeders.BreederResponse"}},
                    "404": {"description": "breeder not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "tags": ["breeders"],
                "summary": "Borrar breeder",
                "parameters": [{"type": "integer", "name": "breederID", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "breeder not found", "schema": {"type": "string"}}
                }
            }
        },
        "/cats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Listar gatos",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "string", "name": "gender", "in": "query"},
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "integer", "name": "owner_id", "in": "query"},
                    {"type": "integer", "name": "breeder_id", "in": "query"},
                    {"type": "integer", "name": "dam_id", "in": "query"},
                    {"type": "integer", "name": "sire_id", "in": "query"},
                    {"type": "string", "name": "born_from", "in": "query"},
                    {"type": "string", "name": "born_to", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/cats.CatResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Registrar gato",
                "parameters": [
                    {"description": "Datos del gato", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cats.createCatRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/cats.CatResponse"}},
                    "422": {"description": "invalid parent", "schema": {"type": "string"}}
                }
            }
        },
        "/cats/{catID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Perfil de gato",
                "parameters": [{"type": "integer", "name": "catID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cats.CatResponse"}},
                    "404": {"description": "cat not found", "schema": {"type": "string"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Editar gato",
                "parameters": [
                    {"type": "integer", "name": "catID", "in": "path", "required": true},
                    {"description": "Campos a modificar", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cats.updateCatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cats.CatResponse"}},
                    "403": {"description": "forbidden", "schema": {"type": "string"}},
                    "404": {"description": "cat not found", "schema": {"type": "string"}},
                    "422": {"description": "invalid parent", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "tags": ["cats"],
                "summary": "Borrar gato",
                "parameters": [{"type": "integer", "name": "catID", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "forbidden", "schema": {"type": "string"}},
                    "404": {"description": "cat not found", "schema": {"type": "string"}}
                }
            }
        },
        "/cats/{catID}/offspring": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Hijos de un gato",
                "parameters": [{"type": "integer", "name": "catID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/cats.CatResponse"}}}
                }
            }
        },
        "/cats/{catID}/pedigree": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pedigree"],
                "summary": "Árbol genealógico",
                "parameters": [
                    {"type": "integer", "name": "catID", "in": "path", "required": true},
                    {"type": "integer", "description": "Generaciones (0-6, default 2)", "name": "depth", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pedigree.treeResponse"}},
                    "404": {"description": "cat not found", "schema": {"type": "string"}}
                }
            }
        },
        "/cats/{catID}/pedigree/generations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pedigree"],
                "summary": "Pedigree por generación",
                "parameters": [
                    {"type": "integer", "name": "catID", "in": "path", "required": true},
                    {"type": "integer", "name": "depth", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pedigree.generationsResponse"}}
                }
            }
        },
        "/cats/{catID}/pedigree.pdf": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["export"],
                "summary": "Pedigree en PDF",
                "parameters": [{"type": "integer", "name": "catID", "in": "path", "required": true}],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "file"},
                        "headers": {"X-Pedigree-Generations": {"type": "integer", "description": "Columnas de la tabla"}}
                    },
                    "404": {"description": "cat not found", "schema": {"type": "string"}}
                }
            }
        },
        "/cats/export.xlsx": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["export"],
                "summary": "Exportar gatos a XLSX",
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        }
    },
    "definitions": {
        "access.loginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "access.loginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "expires_at": {"type": "string"},
                "owner": {"$ref": "#/definitions/owners.OwnerResponse"}
            }
        },
        "owners.createOwnerRequest": {
            "type": "object",
            "properties": {
                "firstname": {"type": "string"}, "surname": {"type": "string"},
                "email": {"type": "string"}, "phone": {"type": "string"},
                "address": {"type": "string"}, "city": {"type": "string"},
                "country": {"type": "string"}, "permission": {"type": "integer"},
                "password": {"type": "string"}
            }
        },
        "owners.updateOwnerRequest": {
            "type": "object",
            "properties": {
                "firstname": {"type": "string"}, "surname": {"type": "string"},
                "email": {"type": "string"}, "phone": {"type": "string"},
                "address": {"type": "string"}, "city": {"type": "string"},
                "country": {"type": "string"}, "permission": {"type": "integer"},
                "password": {"type": "string"}
            }
        },
        "owners.OwnerResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "firstname": {"type": "string"},
                "surname": {"type": "string"}, "email": {"type": "string"},
                "permission": {"type": "integer"}, "role": {"type": "string"},
                "created_at": {"type": "string"}, "updated_at": {"type": "string"}
            }
        },
        "breeders.createBreederRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"}, "contact_name": {"type": "string"},
                "email": {"type": "string"}, "country": {"type": "string"},
                "website": {"type": "string"}, "notes": {"type": "string"}
            }
        },
        "breeders.updateBreederRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"}, "contact_name": {"type": "string"},
                "email": {"type": "string"}, "phone": {"type": "string"},
                "address": {"type": "string"}, "city": {"type": "string"},
                "country": {"type": "string"}, "website": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "breeders.BreederResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "name": {"type": "string"},
                "contact_name": {"type": "string"}, "email": {"type": "string"},
                "country": {"type": "string"}, "website": {"type": "string"}
            }
        },
        "cats.createCatRequest": {
            "type": "object",
            "properties": {
                "firstname": {"type": "string"}, "surname": {"type": "string"},
                "callname": {"type": "string"}, "gender": {"type": "string"},
                "birthday": {"type": "string"}, "microchip": {"type": "string"},
                "dam_id": {"type": "integer"}, "sire_id": {"type": "integer"},
                "breeder_id": {"type": "integer"}, "owner_id": {"type": "integer"},
                "status": {"type": "string"}, "photo_paths": {"type": "array", "items": {"type": "string"}}
            }
        },
        "cats.updateCatRequest": {
            "type": "object",
            "properties": {
                "firstname": {"type": "string"}, "surname": {"type": "string"},
                "callname": {"type": "string"}, "gender": {"type": "string"},
                "birthday": {"type": "string"}, "microchip": {"type": "string"},
                "dam_id": {"type": "integer"}, "sire_id": {"type": "integer"},
                "breeder_id": {"type": "integer"}, "owner_id": {"type": "integer"},
                "colour": {"type": "string"}, "litter_code": {"type": "string"},
                "titles": {"type": "string"}, "status": {"type": "string"},
                "neutered": {"type": "boolean"}, "hcm_tested": {"type": "boolean"},
                "pkd_tested": {"type": "boolean"}, "birth_weight_g": {"type": "integer"},
                "current_weight_g": {"type": "integer"}, "notes": {"type": "string"},
                "photo_paths": {"type": "array", "items": {"type": "string"}}
            }
        },
        "cats.CatResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "name": {"type": "string"},
                "gender": {"type": "string"}, "birthday": {"type": "string"},
                "microchip": {"type": "string"}, "dam_id": {"type": "integer"},
                "sire_id": {"type": "integer"}, "breeder_id": {"type": "integer"},
                "owner_id": {"type": "integer"}, "status": {"type": "string"}
            }
        },
        "pedigree.node": {
            "type": "object",
            "properties": {
                "cat": {"type": "object"},
                "dam": {"$ref": "#/definitions/pedigree.node"},
                "sire": {"$ref": "#/definitions/pedigree.node"}
            }
        },
        "pedigree.treeResponse": {
            "type": "object",
            "properties": {
                "depth": {"type": "integer"},
                "tree": {"$ref": "#/definitions/pedigree.node"},
                "issues": {"type": "array", "items": {"type": "object"}}
            }
        },
        "pedigree.generationsResponse": {
            "type": "object",
            "properties": {
                "depth": {"type": "integer"},
                "generations": {"type": "array", "items": {"type": "object"}},
                "issues": {"type": "array", "items": {"type": "object"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Cat Registry API",
	Description:      "Registro de owners, breeders y gatos con pedigree (dam/sire).",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
