package logging

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theGhostJW/zenith-with-typescript-sub000/types"
)

func TestRecordWriter_WritesSplittableRecords(t *testing.T) {
	var buf bytes.Buffer
	rw := NewRecordWriter(&buf, DefaultDivider)

	require.NoError(t, rw.WriteRecord(map[string]any{"message": "first"}))
	require.NoError(t, rw.WriteRecord(map[string]any{"message": "second\nwith two lines"}))
	require.NoError(t, rw.Close())
	assert.Equal(t, 2, rw.Count())

	var records []string
	require.NoError(t, SplitRecords(&buf, DefaultDivider, func(r string) error {
		records = append(records, r)
		return nil
	}))
	require.Len(t, records, 2)
	assert.Equal(t, "message: first", records[0])
	assert.Contains(t, records[1], "with two lines")
}

func TestReadElements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "run.elements.yaml")
	rw, err := CreateRecordFile(path, DefaultDivider)
	require.NoError(t, err)

	require.NoError(t, rw.WriteElement(types.Element{
		Type:      types.ElementIteration,
		Iteration: &types.IterationInfo{TestName: "Demo_Case", ID: "1"},
	}))
	require.NoError(t, rw.WriteElement(types.Element{
		Type:       types.ElementRunSummary,
		RunSummary: &types.RunSummary{Stats: types.RunStats{TestCases: 1}},
	}))
	require.NoError(t, rw.Close())

	var got []types.Element
	require.NoError(t, ReadElements(path, DefaultDivider, func(el types.Element) error {
		got = append(got, el)
		return nil
	}))
	require.Len(t, got, 2)
	assert.Equal(t, types.ElementIteration, got[0].Type)
	assert.Equal(t, "Demo_Case", got[0].Iteration.TestName)
	assert.Nil(t, got[0].RunSummary)
	assert.Equal(t, 1, got[1].RunSummary.Stats.TestCases)
}
