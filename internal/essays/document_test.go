package essays

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentScan(t *testing.T) {
	var d Document

	require.NoError(t, d.Scan(`{"next_steps":"Revise"}`))
	assert.JSONEq(t, `{"next_steps":"Revise"}`, string(d))

	require.NoError(t, d.Scan([]byte(`["a","b"]`)))
	assert.JSONEq(t, `["a","b"]`, string(d))

	require.NoError(t, d.Scan(map[string]any{"strengths": []any{"x"}}))
	assert.JSONEq(t, `{"strengths":["x"]}`, string(d))

	require.NoError(t, d.Scan(nil))
	assert.Nil(t, d)

	assert.Error(t, d.Scan("not json"))
}

func TestDocumentScanCopiesBytes(t *testing.T) {
	src := []byte(`{"a":1}`)
	var d Document
	require.NoError(t, d.Scan(src))
	src[2] = 'b'
	assert.JSONEq(t, `{"a":1}`, string(d))
}

func TestDocumentMarshalPassesThrough(t *testing.T) {
	r := Response{ID: 1, Feedback: Document(`{"improvements":["evidence"]}`)}
	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"feedback":{"improvements":["evidence"]}`)

	raw, err = json.Marshal(Response{ID: 2})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"feedback":null`)
}
