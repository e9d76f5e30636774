package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint16
		wantErr bool
	}{
		{"8086", 0x8086, false},
		{"0x8086", 0x8086, false},
		{"0X1AF4", 0x1af4, false},
		{"e", 0x000e, false},
		{"", 0, true},
		{"0x", 0, true},
		{"10000", 0, true},
		{"zz", 0, true},
		{"-1", 0, true},
		{"+1", 0, true},
		{"1_0", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseID16(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseID8(t *testing.T) {
	got, err := ParseID8("0x0c")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x0c), got)

	_, err = ParseID8("100")
	assert.Error(t, err)
}

func TestRunVendor(t *testing.T) {
	tbl := fixtureTable(t)

	var buf bytes.Buffer
	require.NoError(t, RunVendor(tbl, 0x1af4, FormatText, &buf))
	assert.Equal(t, "1af4 Red Hat, Inc.\n  1000  Virtio network device\n  1001  Virtio block device\n", buf.String())
}

func TestRunVendor_YAML(t *testing.T) {
	tbl := fixtureTable(t)

	var buf bytes.Buffer
	require.NoError(t, RunVendor(tbl, 0x8086, FormatYAML, &buf))
	out := buf.String()
	assert.Contains(t, out, "Intel Corporation")
	assert.Contains(t, out, "0x100e")
}

func TestRunVendor_NotFound(t *testing.T) {
	tbl := fixtureTable(t)

	err := RunVendor(tbl, 0xdead, FormatText, &bytes.Buffer{})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "dead")
}

func TestRunDevice(t *testing.T) {
	tbl := fixtureTable(t)

	var buf bytes.Buffer
	require.NoError(t, RunDevice(tbl, 0x8086, 0x100e, FormatText, &buf))
	want := "Vendor: 8086 Intel Corporation\n" +
		"Device: 8086:100e 82540EM Gigabit Ethernet Controller\n" +
		"  8086:001e PRO/1000 MT Desktop Adapter\n" +
		"  8086:002e PRO/1000 MT Desktop Adapter\n"
	assert.Equal(t, want, buf.String())
}

func TestRunDevice_NotFound(t *testing.T) {
	tbl := fixtureTable(t)

	// Vendor exists, device does not.
	err := RunDevice(tbl, 0x8086, 0xffff, FormatText, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRunClass(t *testing.T) {
	tbl := fixtureTable(t)

	var buf bytes.Buffer
	require.NoError(t, RunClass(tbl, 0x07, FormatText, &buf))
	assert.Equal(t, "07 Communication controller\n  00  Serial controller\n  01  Parallel controller\n", buf.String())

	assert.ErrorIs(t, RunClass(tbl, 0x42, FormatText, &bytes.Buffer{}), ErrNotFound)
}

func TestRunSubclass(t *testing.T) {
	tbl := fixtureTable(t)

	var buf bytes.Buffer
	require.NoError(t, RunSubclass(tbl, 0x0c, 0x03, FormatText, &buf))
	want := "Class:    0c Serial bus controller\n" +
		"Subclass: 0c03 USB controller\n" +
		"  30 XHCI\n"
	assert.Equal(t, want, buf.String())

	assert.ErrorIs(t, RunSubclass(tbl, 0x07, 0x80, FormatText, &bytes.Buffer{}), ErrNotFound)
}

func TestRunSubclass_YAML(t *testing.T) {
	tbl := fixtureTable(t)

	var buf bytes.Buffer
	require.NoError(t, RunSubclass(tbl, 0x07, 0x00, FormatYAML, &buf))
	out := buf.String()
	assert.Contains(t, out, "Serial controller")
	assert.Contains(t, out, "16550")
	assert.Contains(t, out, "class:")
}

func TestRunList(t *testing.T) {
	tbl := fixtureTable(t)

	var buf bytes.Buffer
	require.NoError(t, RunList(tbl, "vendors", &buf))
	assert.Equal(t, "1af4 Red Hat, Inc.\n8086 Intel Corporation\n", buf.String())

	buf.Reset()
	require.NoError(t, RunList(tbl, "classes", &buf))
	assert.Equal(t, "07 Communication controller\n0c Serial bus controller\n", buf.String())

	assert.Error(t, RunList(tbl, "devices", &buf))
}
