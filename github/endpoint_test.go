package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReleaseByTagName_Path(t *testing.T) {
	tests := []struct {
		name     string
		endpoint ReleaseByTagName
		expected string
	}{
		{
			name:     "simple",
			endpoint: ReleaseByTagName{Owner: "octocat", Repository: "hello-world", Tag: "v1.0.0"},
			expected: "/repos/octocat/hello-world/releases/tags/v1.0.0",
		},
		{
			name:     "components are not escaped",
			endpoint: ReleaseByTagName{Owner: "o", Repository: "r", Tag: "release/2024 beta"},
			expected: "/repos/o/r/releases/tags/release/2024 beta",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.endpoint.Path())
		})
	}
}

func TestReleaseByTagName_Equality(t *testing.T) {
	base := ReleaseByTagName{Owner: "o", Repository: "r", Tag: "v1"}

	assert.True(t, base == ReleaseByTagName{Owner: "o", Repository: "r", Tag: "v1"})
	assert.False(t, base == ReleaseByTagName{Owner: "x", Repository: "r", Tag: "v1"})
	assert.False(t, base == ReleaseByTagName{Owner: "o", Repository: "x", Tag: "v1"})
	assert.False(t, base == ReleaseByTagName{Owner: "o", Repository: "r", Tag: "v2"})

	// Field values must not be able to collide through concatenation.
	assert.False(t, ReleaseByTagName{Owner: "a/b", Repository: "c"} == ReleaseByTagName{Owner: "a", Repository: "b/c"})
}

func TestReleaseByTagName_MapKey(t *testing.T) {
	seen := map[Endpoint]int{}

	seen[ReleaseByTagName{Owner: "o", Repository: "r", Tag: "v1"}]++
	seen[ReleaseByTagName{Owner: "o", Repository: "r", Tag: "v1"}]++
	seen[ReleaseByTagName{Owner: "o", Repository: "r", Tag: "v2"}]++

	assert.Len(t, seen, 2)
	assert.Equal(t, 2, seen[ReleaseByTagName{Owner: "o", Repository: "r", Tag: "v1"}])
}
