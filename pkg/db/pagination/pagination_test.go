package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID string
}

func cursorFor(r row) Cursor {
	return Cursor{ID: r.ID}
}

func TestBuildCursorPageInfo_TrimsAndIssuesToken(t *testing.T) {
	rows := []row{{ID: "3"}, {ID: "2"}, {ID: "1"}}

	page, info, err := BuildCursorPageInfo(rows, 2, cursorFor)
	require.NoError(t, err)

	assert.Len(t, page, 2)
	assert.True(t, info.HasMore)

	cursor, err := DecodeCursor(info.NextPageToken)
	require.NoError(t, err)
	assert.Equal(t, "2", cursor.ID)
}

func TestBuildCursorPageInfo_LastPageHasNoToken(t *testing.T) {
	rows := []row{{ID: "2"}, {ID: "1"}}

	page, info, err := BuildCursorPageInfo(rows, 2, cursorFor)
	require.NoError(t, err)

	assert.Len(t, page, 2)
	assert.False(t, info.HasMore)
	assert.Empty(t, info.NextPageToken)
}

func TestCursorRoundTrip(t *testing.T) {
	token, err := EncodeCursor(Cursor{ID: "42"})
	require.NoError(t, err)

	cursor, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.Equal(t, "42", cursor.ID)

	_, err = DecodeCursor("not base64!")
	assert.Error(t, err)
}
