package schemas

// ProfileCacheVersion is the schema version written into the local
// cache envelope. Unknown versions read as the empty bootstrap state.
const ProfileCacheVersion = 1

// profileCacheSchema describes the local cache file: a versioned
// envelope around the persisted profile list. The resume payload is
// left open so document-shape additions don't invalidate older caches.
const profileCacheSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["schema_version", "profiles"],
  "properties": {
    "schema_version": {"type": "integer", "minimum": 1},
    "profiles": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "resume", "updated_at", "is_active"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string"},
          "resume": {"type": "object"},
          "updated_at": {"type": "integer"},
          "is_active": {"type": "boolean"}
        }
      }
    }
  }
}`

// ValidateProfileCache checks raw cache file content against the
// profile cache schema.
func ValidateProfileCache(jsonContent string) error {
	return ValidateJSONString(profileCacheSchema, jsonContent)
}
