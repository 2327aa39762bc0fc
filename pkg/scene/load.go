package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrSceneLoad is returned for any unreadable or malformed scene description.
var ErrSceneLoad = errors.New("scene load failure")

// DocumentSchema is the JSON schema of a scene description.
const DocumentSchema = `{
	"type": "object",
	"definitions": {
		"vec3": {
			"type": "object",
			"properties": {
				"x": {"type": "number"},
				"y": {"type": "number"},
				"z": {"type": "number"}
			},
			"required": ["x", "y", "z"]
		},
		"box": {
			"type": "object",
			"properties": {
				"min": {"$ref": "#/definitions/vec3"},
				"max": {"$ref": "#/definitions/vec3"}
			},
			"required": ["min", "max"]
		}
	},
	"properties": {
		"boundingBox": {"$ref": "#/definitions/box"},
		"object": {
			"type": "object",
			"properties": {
				"name": {"type": "string"},
				"children": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"uuid": {"type": "string"},
							"name": {"type": "string"},
							"userData": {
								"type": "object",
								"properties": {
									"blocking": {"type": "boolean"}
								}
							},
							"boundingBox": {"$ref": "#/definitions/box"}
						}
					}
				}
			},
			"required": ["children"]
		}
	},
	"required": ["object"]
}`

// document is the on-disk form: the flattened object graph of the 3D scene.
type document struct {
	BoundingBox *BoundingBox `json:"boundingBox"`
	Object      struct {
		Name     string   `json:"name"`
		Children []Object `json:"children"`
	} `json:"object"`
}

var documentSchema = gojsonschema.NewStringLoader(DocumentSchema)

// Load reads a scene description from a JSON file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading scene file: %w", ErrSceneLoad, err)
	}
	return Parse(data)
}

// Parse validates data against DocumentSchema and decodes it. When the document
// has no explicit bounding box, the scene bounds are the union of its children.
func Parse(data []byte) (*Scene, error) {
	result, err := gojsonschema.Validate(documentSchema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing scene JSON: %w", ErrSceneLoad, err)
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, fmt.Errorf("%w: schema violations: %s", ErrSceneLoad, strings.Join(msgs, "; "))
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decoding scene: %w", ErrSceneLoad, err)
	}

	s := &Scene{
		Name:    doc.Object.Name,
		Objects: doc.Object.Children,
	}
	if s.Objects == nil {
		s.Objects = []Object{}
	}
	if doc.BoundingBox != nil {
		s.Bounds = *doc.BoundingBox
	} else {
		s.Bounds = computeBounds(s.Objects)
	}
	return s, nil
}
