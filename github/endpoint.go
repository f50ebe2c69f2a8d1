package github

// Endpoint is a logical API operation that resolves to a request path.
// Implementations are comparable structs, so == is structural and an
// Endpoint can key a map.
type Endpoint interface {
	Path() string
}

// ReleaseByTagName is GET /repos/{owner}/{repo}/releases/tags/{tag}.
type ReleaseByTagName struct {
	Owner      string
	Repository string
	Tag        string
}

// Path returns the request path with each component taken literally.
func (e ReleaseByTagName) Path() string {
	return "/repos/" + e.Owner + "/" + e.Repository + "/releases/tags/" + e.Tag
}
