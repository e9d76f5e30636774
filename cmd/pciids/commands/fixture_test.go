package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pciids/pciids-go/pkg/pciids"
)

const fixtureDB = `# test database
1af4  Red Hat, Inc.
	1000  Virtio network device
		1af4 0001  Virtio network device
	1001  Virtio block device
8086  Intel Corporation
	100e  82540EM Gigabit Ethernet Controller
		8086 001e  PRO/1000 MT Desktop Adapter
		8086 002e  PRO/1000 MT Desktop Adapter

C 07  Communication controller
	00  Serial controller
		00  8250
		02  16550
	01  Parallel controller
C 0c  Serial bus controller
	03  USB controller
		30  XHCI
`

func fixtureTable(t *testing.T) *pciids.Table {
	t.Helper()
	tbl, err := pciids.Parse(strings.NewReader(fixtureDB))
	require.NoError(t, err)
	return tbl
}
