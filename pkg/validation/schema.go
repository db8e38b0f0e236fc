package validation

// Mode selects which card schema a validator enforces.
type Mode int

const (
	// ModeCreate validates POST /cards bodies. An id may be present but is
	// ignored by the server. Fields a card does not carry are rejected.
	ModeCreate Mode = iota

	// ModeStored validates cards read back from storage.
	ModeStored
)

func (m Mode) String() string {
	switch m {
	case ModeStored:
		return "stored"
	default:
		return "create"
	}
}

const createCardSchema = `{
  "type": "object",
  "required": ["title", "template_id", "sizes", "basePrice", "pages"],
  "additionalProperties": false,
  "properties": {
    "id": {"type": "string"},
    "title": {"type": "string", "minLength": 1},
    "template_id": {"type": "string"},
    "sizes": {"type": "array", "items": {"type": "string"}},
    "basePrice": {"type": "number", "minimum": 0},
    "pages": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["title", "template"],
        "additionalProperties": false,
        "properties": {
          "title": {"type": "string"},
          "template": {"type": "string"}
        }
      }
    }
  }
}`

const storedCardSchema = `{
  "allOf": [{"$ref": "create.json"}],
  "required": ["id"],
  "properties": {
    "id": {"type": "string", "pattern": "^card[0-9]{3,}$"}
  }
}`
