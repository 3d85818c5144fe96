// Package docs 接口文档，手工维护；改动路由注解后可用 swag init 重新生成覆盖本文件
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
        "/api/health": {
            "get": {
                "description": "检查数据库、Redis 和 ffmpeg 状态",
                "produces": ["application/json"],
                "tags": ["系统"],
                "summary": "健康检查",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/reschedule": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "把一节课移到新日期，顺延其后所有课程并重排周次/课次",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["调课"],
                "summary": "调整课程日期",
                "parameters": [
                    {"description": "调课参数", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.ShiftRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controller.ApplyShiftResponse"}},
                    "207": {"description": "Multi-Status", "schema": {"$ref": "#/definitions/controller.PartialShiftResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/reschedule/preview": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "计算调课后的日期与周次，不修改数据",
                "produces": ["application/json"],
                "tags": ["调课"],
                "summary": "预览调课结果",
                "parameters": [
                    {"type": "string", "description": "班级课程表名", "name": "tableName", "in": "query", "required": true},
                    {"type": "integer", "description": "课程ID", "name": "sessionId", "in": "query", "required": true},
                    {"type": "string", "description": "新日期 YYYY-MM-DD", "name": "newDate", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controller.PreviewShiftResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/cohorts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["班级"],
                "summary": "班级列表",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "建立班级课程表并登记班级，可选按上课日生成初始课表",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["班级"],
                "summary": "创建班级",
                "parameters": [
                    {"description": "班级信息", "name": "cohort", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.CreateCohortRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/util.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/util.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/cohorts/{table}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "返回班级登记信息和完整课表",
                "produces": ["application/json"],
                "tags": ["班级"],
                "summary": "班级详情",
                "parameters": [{"type": "string", "description": "班级课程表名", "name": "table", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/cohorts/{table}/renumber": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "手工修改日期后，按当前日期整表重排周次/课次",
                "produces": ["application/json"],
                "tags": ["调课"],
                "summary": "按日期重排周次",
                "parameters": [{"type": "string", "description": "班级课程表名", "name": "table", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}
            }
        },
        "/api/cohorts/{table}/shifts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "按时间倒序返回最近的调课记录",
                "produces": ["application/json"],
                "tags": ["调课"],
                "summary": "调课记录",
                "parameters": [
                    {"type": "string", "description": "班级课程表名", "name": "table", "in": "path", "required": true},
                    {"type": "integer", "description": "条数，默认 20，最多 200", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/cohorts/{table}/sessions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "按周次、课次排序",
                "produces": ["application/json"],
                "tags": ["班级"],
                "summary": "课表",
                "parameters": [{"type": "string", "description": "班级课程表名", "name": "table", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "批量追加课程，星期由日期推出，插入后整表重排周次",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["班级"],
                "summary": "追加课程",
                "parameters": [
                    {"type": "string", "description": "班级课程表名", "name": "table", "in": "path", "required": true},
                    {"description": "课程列表", "name": "sessions", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/model.ClassSession"}}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/util.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/cohorts/{table}/sessions/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "只修改科目、资料和录像等描述字段，日期请使用调课接口",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["班级"],
                "summary": "修改课程内容",
                "parameters": [
                    {"type": "string", "description": "班级课程表名", "name": "table", "in": "path", "required": true},
                    {"type": "integer", "description": "课程ID", "name": "id", "in": "path", "required": true},
                    {"description": "要修改的字段", "name": "patch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.SessionContentPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/cohorts/{table}/sessions/{id}/materials": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "kind 为 initial（课前资料）、session（课堂资料）或 recording（录像）",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["班级"],
                "summary": "上传课程资料",
                "parameters": [
                    {"type": "string", "description": "班级课程表名", "name": "table", "in": "path", "required": true},
                    {"type": "integer", "description": "课程ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "资料类型", "name": "kind", "in": "formData", "required": true},
                    {"type": "file", "description": "文件", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/meetings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["在线课堂"],
                "summary": "在线课堂列表",
                "parameters": [{"type": "string", "description": "班级课程表名", "name": "tableName", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "通过会议服务创建预约会议，可关联到某节课",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["在线课堂"],
                "summary": "创建在线课堂",
                "parameters": [
                    {"description": "会议信息", "name": "meeting", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.CreateMeetingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/util.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/util.Response"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        }
    },
    "definitions": {
        "controller.ApplyShiftResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "boolean"},
                "updatedCount": {"type": "integer"},
                "updates": {"type": "array", "items": {"$ref": "#/definitions/service.SessionUpdate"}}
            }
        },
        "controller.PartialShiftResponse": {
            "type": "object",
            "properties": {
                "errors": {"type": "array", "items": {"type": "string"}},
                "message": {"type": "string"},
                "success": {"type": "boolean"},
                "updatedCount": {"type": "integer"}
            }
        },
        "controller.PreviewShiftResponse": {
            "type": "object",
            "properties": {
                "affectedCount": {"type": "integer"},
                "dayPattern": {"type": "array", "items": {"type": "string"}},
                "preview": {"type": "array", "items": {"$ref": "#/definitions/scheduler.PreviewRow"}},
                "shiftedSession": {"$ref": "#/definitions/service.ShiftedSession"},
                "success": {"type": "boolean"}
            }
        },
        "model.ClassSession": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "date": {"type": "string"},
                "day": {"type": "string"},
                "id": {"type": "integer"},
                "initial_session_material": {"type": "string"},
                "session_material": {"type": "string"},
                "session_number": {"type": "integer"},
                "session_recording": {"type": "string"},
                "session_type": {"type": "string"},
                "subject_name": {"type": "string"},
                "subject_topic": {"type": "string"},
                "subject_type": {"type": "string"},
                "time": {"type": "string"},
                "week_number": {"type": "integer"}
            }
        },
        "scheduler.PreviewRow": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "newDate": {"type": "string"},
                "newDay": {"type": "string"},
                "newSession": {"type": "integer"},
                "newWeek": {"type": "integer"},
                "oldDate": {"type": "string"},
                "oldDay": {"type": "string"},
                "oldSession": {"type": "integer"},
                "oldWeek": {"type": "integer"},
                "session_type": {"type": "string"},
                "subject_name": {"type": "string"}
            }
        },
        "service.CreateCohortRequest": {
            "type": "object",
            "required": ["name", "tableName"],
            "properties": {
                "days": {"type": "array", "items": {"type": "string"}},
                "name": {"type": "string"},
                "sessionCount": {"type": "integer"},
                "startDate": {"type": "string"},
                "tableName": {"type": "string"}
            }
        },
        "service.CreateMeetingRequest": {
            "type": "object",
            "required": ["startTime", "topic"],
            "properties": {
                "agenda": {"type": "string"},
                "duration": {"type": "integer"},
                "sessionId": {"type": "integer"},
                "startTime": {"type": "string"},
                "tableName": {"type": "string"},
                "topic": {"type": "string"}
            }
        },
        "service.SessionContentPatch": {
            "type": "object",
            "properties": {
                "initial_session_material": {"type": "string"},
                "session_material": {"type": "string"},
                "session_recording": {"type": "string"},
                "session_type": {"type": "string"},
                "subject_name": {"type": "string"},
                "subject_topic": {"type": "string"},
                "subject_type": {"type": "string"},
                "time": {"type": "string"}
            }
        },
        "service.SessionUpdate": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "day": {"type": "string"},
                "id": {"type": "integer"}
            }
        },
        "service.ShiftRequest": {
            "type": "object",
            "properties": {
                "newDate": {"type": "string"},
                "sessionId": {"type": "integer"},
                "tableName": {"type": "string"}
            }
        },
        "service.ShiftedSession": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "session_number": {"type": "integer"},
                "week_number": {"type": "integer"}
            }
        },
        "util.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Cohort 课表服务 API",
	Description:      "班级课表维护与调课服务：调课预览/应用、周次重排、课程资料与在线课堂。",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
