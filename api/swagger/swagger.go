package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "LMS Insight API",
        "description": "Read-only performance analytics over native LMS activity data",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Analytics", "description": "Course and student metric bundles"},
        {"name": "Exports", "description": "Inline CSV/PDF report downloads"},
        {"name": "System", "description": "Engine instrumentation"}
    ],
    "paths": {
        "/courses/{courseId}/metrics": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Course performance metrics bundle",
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{studentId}/metrics": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Student performance metrics bundle",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{courseId}/report": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a course metrics report",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"},
                    {"name": "type", "in": "query", "type": "string", "enum": ["summary", "performers"], "default": "summary"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Rendered report"},
                    "400": {"description": "Invalid type or format"}
                }
            }
        },
        "/system/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Engine instrumentation snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/system/cache": {
            "delete": {
                "tags": ["System"],
                "summary": "Drop cached metric bundles so the next request recomputes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CourseMetricsBundle": {
            "type": "object",
            "properties": {
                "snapshotId": {"type": "string"},
                "courseId": {"type": "string"},
                "generatedAt": {"type": "string"},
                "studentCount": {"type": "integer"},
                "attendanceRate": {"type": "number"},
                "gradeDistribution": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/BandBucket"}
                },
                "examResults": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/KindExamResult"}
                },
                "topPerformers": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/TopPerformer"}
                },
                "subjectAverages": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/SubjectAverage"}
                },
                "assignmentStats": {"$ref": "#/definitions/ActivityKindStats"},
                "quizStats": {"$ref": "#/definitions/ActivityKindStats"},
                "courseStats": {"$ref": "#/definitions/CourseStats"}
            }
        },
        "StudentMetricsBundle": {
            "type": "object",
            "properties": {
                "snapshotId": {"type": "string"},
                "learnerId": {"type": "string"},
                "generatedAt": {"type": "string"},
                "overallPercentage": {"type": "number"},
                "completionByKind": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/KindCompletion"}
                },
                "courses": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/CourseProgress"}
                },
                "hoursSpent": {"type": "number"}
            }
        },
        "BandBucket": {
            "type": "object",
            "properties": {
                "band": {"type": "string"},
                "studentCount": {"type": "integer"}
            }
        },
        "KindExamResult": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "pass": {"type": "integer"},
                "average": {"type": "integer"},
                "fail": {"type": "integer"}
            }
        },
        "TopPerformer": {
            "type": "object",
            "properties": {
                "rank": {"type": "integer"},
                "learnerId": {"type": "string"},
                "averagePercentage": {"type": "number"},
                "completedActivities": {"type": "integer"}
            }
        },
        "SubjectAverage": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "averagePercentage": {"type": "number"},
                "gradedLearners": {"type": "integer"}
            }
        },
        "ActivityKindStats": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "submitted": {"type": "integer"},
                "graded": {"type": "integer"},
                "averagePercentage": {"type": "number"}
            }
        },
        "CourseStats": {
            "type": "object",
            "properties": {
                "totalActivities": {"type": "integer"},
                "completedActivities": {"type": "integer"},
                "studentsWithGrades": {"type": "integer"}
            }
        },
        "KindCompletion": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "total": {"type": "integer"},
                "completed": {"type": "integer"},
                "inProgress": {"type": "integer"},
                "notStarted": {"type": "integer"},
                "percentage": {"type": "number"}
            }
        },
        "CourseProgress": {
            "type": "object",
            "properties": {
                "courseId": {"type": "string"},
                "title": {"type": "string"},
                "totalActivities": {"type": "integer"},
                "completedActivities": {"type": "integer"},
                "progressPercentage": {"type": "number"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
