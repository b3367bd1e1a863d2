package replicate

import "strings"

// ModelRef identifies a model by owner and name.
type ModelRef struct {
	Owner string
	Name  string
}

// ParseModelRef parses an "owner/name" string into a ModelRef. Only the first
// two slash-separated segments are kept; anything after a second slash is
// silently dropped, matching the upstream API client behavior.
func ParseModelRef(s string) ModelRef {
	parts := strings.Split(s, "/")

	ref := ModelRef{Owner: parts[0]}
	if len(parts) > 1 {
		ref.Name = parts[1]
	}

	return ref
}

// String returns the "owner/name" form.
func (r ModelRef) String() string {
	return r.Owner + "/" + r.Name
}

// Path returns the canonical collection path for the model. Segments are
// concatenated verbatim; owner and name are API-side slugs and are not
// URL-encoded.
func (r ModelRef) Path() string {
	return "/models/" + r.Owner + "/" + r.Name
}

// IsZero reports whether both owner and name are empty.
func (r ModelRef) IsZero() bool {
	return r.Owner == "" && r.Name == ""
}

// ModelRef implements ModelReference.
func (r ModelRef) ModelRef() ModelRef {
	return r
}

// ModelReference is anything that identifies a model: a raw "owner/name"
// string (ModelName), a ModelRef, or a *Model handle. References are resolved
// once at the client boundary into a canonical path.
type ModelReference interface {
	ModelRef() ModelRef
}

// ModelName is a raw "owner/name" model identifier.
type ModelName string

// ModelRef implements ModelReference.
func (n ModelName) ModelRef() ModelRef {
	return ParseModelRef(string(n))
}

// ModelRef implements ModelReference for a fetched model handle.
func (m *Model) ModelRef() ModelRef {
	return ModelRef{Owner: m.Owner, Name: m.Name}
}

// DeploymentRef identifies a deployment by owner and name.
type DeploymentRef struct {
	Owner string
	Name  string
}

// ParseDeploymentRef parses an "owner/name" string into a DeploymentRef with
// the same truncation semantics as ParseModelRef.
func ParseDeploymentRef(s string) DeploymentRef {
	ref := ParseModelRef(s)

	return DeploymentRef{Owner: ref.Owner, Name: ref.Name}
}

// String returns the "owner/name" form.
func (r DeploymentRef) String() string {
	return r.Owner + "/" + r.Name
}

// Path returns the canonical collection path for the deployment.
func (r DeploymentRef) Path() string {
	return "/deployments/" + r.Owner + "/" + r.Name
}

// IsZero reports whether both owner and name are empty.
func (r DeploymentRef) IsZero() bool {
	return r.Owner == "" && r.Name == ""
}

// DeploymentRef implements DeploymentReference.
func (r DeploymentRef) DeploymentRef() DeploymentRef {
	return r
}

// DeploymentReference is anything that identifies a deployment: a raw
// "owner/name" string (DeploymentName), a DeploymentRef, or a *Deployment
// handle.
type DeploymentReference interface {
	DeploymentRef() DeploymentRef
}

// DeploymentName is a raw "owner/name" deployment identifier.
type DeploymentName string

// DeploymentRef implements DeploymentReference.
func (n DeploymentName) DeploymentRef() DeploymentRef {
	return ParseDeploymentRef(string(n))
}

// DeploymentRef implements DeploymentReference for a fetched deployment handle.
func (d *Deployment) DeploymentRef() DeploymentRef {
	return DeploymentRef{Owner: d.Owner, Name: d.Name}
}

// VersionSource supplies a model version id for operations that need one:
// a raw id (VersionID), a *ModelVersion handle, or a *Model handle carrying
// its latest version.
type VersionSource interface {
	versionSource()
}

// VersionID is a raw model version identifier.
type VersionID string

func (VersionID) versionSource()     {}
func (*ModelVersion) versionSource() {}
func (*Model) versionSource()        {}

// KnownVersionID reports the version id carried by src without performing any
// lookup. It returns false when src is nil or carries no id; callers that
// require an id then fall back to fetching the model's latest version.
func KnownVersionID(src VersionSource) (string, bool) {
	switch v := src.(type) {
	case VersionID:
		return string(v), v != ""
	case *ModelVersion:
		if v == nil {
			return "", false
		}

		return v.ID, v.ID != ""
	case *Model:
		if v == nil || v.LatestVersion == nil {
			return "", false
		}

		return v.LatestVersion.ID, v.LatestVersion.ID != ""
	default:
		return "", false
	}
}
