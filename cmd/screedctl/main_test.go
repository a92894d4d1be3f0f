package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"en13813/internal/classes"
	"en13813/internal/conformity"
	"en13813/internal/designation"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDesignationGenerate(t *testing.T) {
	t.Run("from flags", func(t *testing.T) {
		out, err := execute(t, "", "designation", "generate", "--binder", "CT", "--compressive", "C25", "--flexural", "F4")
		require.NoError(t, err)
		assert.Equal(t, "CT-C25-F4\n", out)
	})

	t.Run("from stdin", func(t *testing.T) {
		out, err := execute(t, `{"binder_type":"CA","compressive_class":"C30","flexural_class":"F5"}`,
			"designation", "generate", "--file", "-")
		require.NoError(t, err)
		assert.Equal(t, "CA-C30-F5\n", out)
	})

	t.Run("missing strength class", func(t *testing.T) {
		_, err := execute(t, "", "designation", "generate", "--binder", "CT")
		require.Error(t, err)
		assert.NotErrorIs(t, err, errCheckFailed)
	})
}

func TestDesignationParse(t *testing.T) {
	out, err := execute(t, "", "designation", "parse", "CT-C25-F4")
	require.NoError(t, err)

	var parsed designation.Parsed
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, classes.BinderCement, parsed.Properties.BinderType)
	assert.Equal(t, "C25", parsed.Properties.Compressive)
	assert.Equal(t, "F4", parsed.Properties.Flexural)
}

func TestDesignationValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		out, err := execute(t, "", "designation", "validate", "CT-C25-F4")
		require.NoError(t, err)
		var res designation.Result
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.True(t, res.Valid)
	})

	t.Run("invalid exits non-zero after printing the report", func(t *testing.T) {
		out, err := execute(t, "", "designation", "validate", "CT-C25")
		require.ErrorIs(t, err, errCheckFailed)
		var res designation.Result
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.NotEmpty(t, res.Errors)
	})

	t.Run("strict flag escalates out-of-table classes", func(t *testing.T) {
		_, err := execute(t, "", "designation", "validate", "CT-C27-F4")
		require.NoError(t, err)
		_, err = execute(t, "", "--strict", "designation", "validate", "CT-C27-F4")
		assert.ErrorIs(t, err, errCheckFailed)
	})
}

func TestAssess(t *testing.T) {
	t.Run("passing set from flags", func(t *testing.T) {
		out, err := execute(t, "", "assess",
			"--property", "compressive_strength", "--class", "C25", "--values", "26,27,25.5,26.2,25.8")
		require.NoError(t, err)
		var res conformity.Result
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.True(t, res.Passed)
	})

	t.Run("failing set exits non-zero", func(t *testing.T) {
		_, err := execute(t, "", "assess",
			"--property", "compressive_strength", "--class", "C25", "--values", "20")
		assert.ErrorIs(t, err, errCheckFailed)
	})

	t.Run("batch from stdin", func(t *testing.T) {
		in := `[
			{"property":"compressive_strength","declared_class":"C25","values":[26,27,25.5,26.2,25.8]},
			{"property":"flexural_strength","declared_class":"C25","values":[5]}
		]`
		out, err := execute(t, in, "assess", "--file", "-")
		require.ErrorIs(t, err, errCheckFailed)

		var report batchOutput
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.False(t, report.AllPassed)
		require.Len(t, report.Items, 2)
		require.NotNil(t, report.Items[0].Result)
		assert.True(t, report.Items[0].Result.Passed)
		assert.NotEmpty(t, report.Items[1].Error)
	})

	t.Run("property requires class and values", func(t *testing.T) {
		_, err := execute(t, "", "assess", "--property", "compressive_strength")
		assert.Error(t, err)
	})
}
