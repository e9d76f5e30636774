package pciids

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// SnapshotVersion is the snapshot format written by [Table.MarshalBinary].
const SnapshotVersion = 1

// fingerprintNamespace scopes the name-based UUIDs returned by Fingerprint.
var fingerprintNamespace = uuid.MustParse("3d6f0a52-8c1e-4b7a-9f25-6e0c4d8b1a73")

var (
	snapEncMode cbor.EncMode
	snapDecMode cbor.DecMode
)

func init() {
	var err error

	// Canonical, definite-length encoding keeps snapshots byte-for-byte
	// reproducible.
	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	snapEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create snapshot CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}
	snapDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create snapshot CBOR decoder mode: %v", err))
	}
}

// snapshotEnvelope wraps the encoded tree with its format version and a
// BLAKE2b-256 digest of the payload bytes.
type snapshotEnvelope struct {
	Version uint   `cbor:"1,keyasint"`
	Digest  []byte `cbor:"2,keyasint"`
	Payload []byte `cbor:"3,keyasint"`
}

type snapshotTree struct {
	Vendors []snapshotVendor `cbor:"1,keyasint,omitempty"`
	Classes []snapshotClass  `cbor:"2,keyasint,omitempty"`
}

type snapshotVendor struct {
	ID      uint16           `cbor:"1,keyasint"`
	Name    string           `cbor:"2,keyasint"`
	Devices []snapshotDevice `cbor:"3,keyasint,omitempty"`
}

type snapshotDevice struct {
	ID         uint16              `cbor:"1,keyasint"`
	Name       string              `cbor:"2,keyasint"`
	SubSystems []snapshotSubSystem `cbor:"3,keyasint,omitempty"`
}

type snapshotSubSystem struct {
	Subvendor uint16 `cbor:"1,keyasint"`
	Subdevice uint16 `cbor:"2,keyasint"`
	Name      string `cbor:"3,keyasint"`
}

type snapshotClass struct {
	ID         uint8              `cbor:"1,keyasint"`
	Name       string             `cbor:"2,keyasint"`
	Subclasses []snapshotSubclass `cbor:"3,keyasint,omitempty"`
}

type snapshotSubclass struct {
	ID      uint8            `cbor:"1,keyasint"`
	Name    string           `cbor:"2,keyasint"`
	ProgIfs []snapshotProgIf `cbor:"3,keyasint,omitempty"`
}

type snapshotProgIf struct {
	ID   uint8  `cbor:"1,keyasint"`
	Name string `cbor:"2,keyasint"`
}

func (t *Table) snapshotTree() snapshotTree {
	var tree snapshotTree
	for i := range t.vendors {
		v := &t.vendors[i]
		sv := snapshotVendor{ID: v.id, Name: v.name}
		for j := range v.devices {
			d := &v.devices[j]
			sd := snapshotDevice{ID: d.id, Name: d.name}
			for _, s := range d.subsystems {
				sd.SubSystems = append(sd.SubSystems, snapshotSubSystem{
					Subvendor: s.subvendor,
					Subdevice: s.subdevice,
					Name:      s.name,
				})
			}
			sv.Devices = append(sv.Devices, sd)
		}
		tree.Vendors = append(tree.Vendors, sv)
	}
	for i := range t.classes {
		c := &t.classes[i]
		sc := snapshotClass{ID: c.id, Name: c.name}
		for j := range c.subclasses {
			s := &c.subclasses[j]
			ss := snapshotSubclass{ID: s.id, Name: s.name}
			for _, p := range s.progIfs {
				ss.ProgIfs = append(ss.ProgIfs, snapshotProgIf{ID: p.id, Name: p.name})
			}
			sc.Subclasses = append(sc.Subclasses, ss)
		}
		tree.Classes = append(tree.Classes, sc)
	}
	return tree
}

func (t *Table) encodePayload() ([]byte, error) {
	return snapEncMode.Marshal(t.snapshotTree())
}

// MarshalBinary encodes the table as a CBOR snapshot. Tables built from
// identical input produce identical bytes.
func (t *Table) MarshalBinary() ([]byte, error) {
	payload, err := t.payload()
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot payload: %w", err)
	}
	digest := blake2b.Sum256(payload)
	return snapEncMode.Marshal(snapshotEnvelope{
		Version: SnapshotVersion,
		Digest:  digest[:],
		Payload: payload,
	})
}

// Fingerprint returns a name-based UUID derived from the table contents.
// Tables with the same records have the same fingerprint.
func (t *Table) Fingerprint() (uuid.UUID, error) {
	payload, err := t.payload()
	if err != nil {
		return uuid.Nil, fmt.Errorf("encoding snapshot payload: %w", err)
	}
	return uuid.NewSHA1(fingerprintNamespace, payload), nil
}

// UnmarshalSnapshot restores a table from a snapshot written by
// [Table.MarshalBinary]. The restored table is checked the same way as a
// freshly parsed one.
func UnmarshalSnapshot(data []byte) (*Table, error) {
	var env snapshotEnvelope
	if err := snapDecMode.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if env.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, env.Version)
	}
	digest := blake2b.Sum256(env.Payload)
	if !bytes.Equal(digest[:], env.Digest) {
		return nil, ErrSnapshotCorrupt
	}

	var tree snapshotTree
	if err := snapDecMode.Unmarshal(env.Payload, &tree); err != nil {
		return nil, fmt.Errorf("decoding snapshot payload: %w", err)
	}

	vendors := make([]Vendor, 0, len(tree.Vendors))
	for _, sv := range tree.Vendors {
		v := Vendor{id: sv.ID, name: sv.Name}
		for _, sd := range sv.Devices {
			d := Device{vendorID: sv.ID, id: sd.ID, name: sd.Name}
			for _, ss := range sd.SubSystems {
				d.subsystems = append(d.subsystems, SubSystem{
					subvendor: ss.Subvendor,
					subdevice: ss.Subdevice,
					name:      ss.Name,
				})
			}
			v.devices = append(v.devices, d)
		}
		vendors = append(vendors, v)
	}

	classes := make([]Class, 0, len(tree.Classes))
	for _, sc := range tree.Classes {
		c := Class{id: sc.ID, name: sc.Name}
		for _, ss := range sc.Subclasses {
			s := Subclass{classID: sc.ID, id: ss.ID, name: ss.Name}
			for _, sp := range ss.ProgIfs {
				s.progIfs = append(s.progIfs, ProgIf{id: sp.ID, name: sp.Name})
			}
			c.subclasses = append(c.subclasses, s)
		}
		classes = append(classes, c)
	}

	t, err := newTable(vendors, classes)
	if err != nil {
		return nil, fmt.Errorf("restoring snapshot: %w", err)
	}
	return t, nil
}
