// Package gjson recovers the chapter list from the client state blob that
// work pages embed in a __NEXT_DATA__ script tag.
package gjson

import (
	"strings"

	"github.com/fwojciec/kakudump"
	"github.com/tidwall/gjson"
)

// StatePath locates the Apollo cache inside the embedded state.
const StatePath = "props.pageProps.__APOLLO_STATE__"

// EpisodePrefix tags the cache keys of episode entities.
const EpisodePrefix = "Episode:"

// DecodeChapters returns the episode identifiers found among the keys of
// the Apollo cache object, in key order. Values are skipped without being
// materialized, and so are all sibling fields on the way to the cache.
//
// Returns EDECODE if data is not valid JSON or the cache object is missing
// or not an object.
func DecodeChapters(data string) ([]string, error) {
	if !gjson.Valid(data) {
		return nil, kakudump.Errorf(kakudump.EDECODE, "embedded state is not valid JSON")
	}

	state := gjson.Get(data, StatePath)
	if !state.Exists() {
		return nil, kakudump.Errorf(kakudump.EDECODE, "embedded state has no %s", StatePath)
	}
	if !state.IsObject() {
		return nil, kakudump.Errorf(kakudump.EDECODE, "expected %s to be an object, got %s", StatePath, state.Type)
	}

	chapters := []string{}
	state.ForEach(func(key, _ gjson.Result) bool {
		if id, ok := strings.CutPrefix(key.String(), EpisodePrefix); ok && id != "" {
			chapters = append(chapters, id)
		}
		return true
	})

	return chapters, nil
}
