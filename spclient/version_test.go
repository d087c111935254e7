package spclient

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionsList(t *testing.T) {
	response := `{"value":[
		{"ID":512,"VersionLabel":"1.0","IsCurrentVersion":false,"Size":"1024","Url":"_vti_history/512/lib/big.bin"},
		{"ID":1024,"VersionLabel":"2.0","IsCurrentVersion":true,"Size":2048,"Url":"_vti_history/1024/lib/big.bin"}
	]}`
	mock := &mockHTTPClient{getResponse: json.RawMessage(response)}

	versions, err := testFile(mock).Versions().List()
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, "1.0", versions[0].VersionLabel)
	assert.Equal(t, int64(1024), int64(versions[0].Size))
	assert.Equal(t, int64(2048), int64(versions[1].Size))
	assert.True(t, versions[1].IsCurrentVersion)

	require.Len(t, mock.requests, 1)
	assert.True(t, strings.HasSuffix(mock.requests[0].path, "/versions"))
}

func TestVersionsGetByID(t *testing.T) {
	mock := &mockHTTPClient{getResponse: json.RawMessage(`{"d":{"ID":512,"VersionLabel":"1.0"}}`)}

	version, err := testFile(mock).Versions().GetByID(512)
	require.NoError(t, err)
	assert.Equal(t, 512, version.ID)
	assert.Contains(t, mock.requests[0].path, "/versions/getbyid(versionid=512)")
}

func TestVersionsDelete(t *testing.T) {
	mock := &mockHTTPClient{postResponse: json.RawMessage(`{}`)}
	versions := testFile(mock).Versions()

	require.NoError(t, versions.DeleteAll())
	require.NoError(t, versions.DeleteByID(512))
	require.NoError(t, versions.DeleteByLabel("1.0"))
	require.NoError(t, versions.RestoreByLabel("1.0"))

	require.Len(t, mock.requests, 4)
	assert.Contains(t, mock.requests[0].path, "/versions/deleteall()")
	assert.Contains(t, mock.requests[1].path, "/versions/deletebyid(vid=512)")
	assert.Contains(t, mock.requests[2].path, "/versions/deletebylabel(versionlabel='1.0')")
	assert.Contains(t, mock.requests[3].path, "/versions/restorebylabel(versionlabel='1.0')")
}
