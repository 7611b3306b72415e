// Package schema models the measurement layout of one TsFile.
//
// A Schema maps device paths to devices, and a Device maps measurement ids
// to their column schema. Both levels preserve insertion order: the writer
// iterates them in registration order, which keeps the emitted file
// byte-reproducible. Lookup goes through a side index so it stays O(1).
package schema

import (
	"fmt"

	"github.com/arloliu/tsfile/errs"
	"github.com/arloliu/tsfile/format"
)

// MeasurementSchema declares one column: its value type, column encoding
// and page-body compression.
type MeasurementSchema struct {
	DataType    format.DataType
	Encoding    format.Encoding
	Compression format.Compression
}

// NewMeasurementSchema creates a measurement schema.
func NewMeasurementSchema(dataType format.DataType, enc format.Encoding, comp format.Compression) MeasurementSchema {
	return MeasurementSchema{
		DataType:    dataType,
		Encoding:    enc,
		Compression: comp,
	}
}

// Device holds the measurements of one device in insertion order.
type Device struct {
	ids     []string
	index   map[string]int
	schemas []MeasurementSchema
}

// NewDevice creates an empty device.
func NewDevice() *Device {
	return &Device{
		index: make(map[string]int),
	}
}

// Add registers a measurement. The id must be non-empty and unique within
// the device.
func (d *Device) Add(measurementID string, ms MeasurementSchema) error {
	if measurementID == "" {
		return fmt.Errorf("%w: measurement id", errs.ErrEmptyIdentifier)
	}

	if _, ok := d.index[measurementID]; ok {
		return fmt.Errorf("%w: measurement %q", errs.ErrDuplicateIdentifier, measurementID)
	}

	d.index[measurementID] = len(d.ids)
	d.ids = append(d.ids, measurementID)
	d.schemas = append(d.schemas, ms)

	return nil
}

// Len returns the number of measurements.
func (d *Device) Len() int {
	return len(d.ids)
}

// At returns the i-th measurement in insertion order.
func (d *Device) At(i int) (string, MeasurementSchema) {
	return d.ids[i], d.schemas[i]
}

// Get looks up a measurement by id.
func (d *Device) Get(measurementID string) (MeasurementSchema, bool) {
	i, ok := d.index[measurementID]
	if !ok {
		return MeasurementSchema{}, false
	}

	return d.schemas[i], true
}

// Schema holds the devices of one file in insertion order. Device paths may
// contain '.' separators; the writer treats them as opaque strings.
type Schema struct {
	ids     []string
	index   map[string]int
	devices []*Device
}

// New creates an empty schema.
func New() *Schema {
	return &Schema{
		index: make(map[string]int),
	}
}

// Add registers a device under its path. The path must be non-empty and
// unique within the schema.
func (s *Schema) Add(devicePath string, d *Device) error {
	if devicePath == "" {
		return fmt.Errorf("%w: device path", errs.ErrEmptyIdentifier)
	}

	if _, ok := s.index[devicePath]; ok {
		return fmt.Errorf("%w: device %q", errs.ErrDuplicateIdentifier, devicePath)
	}

	s.index[devicePath] = len(s.ids)
	s.ids = append(s.ids, devicePath)
	s.devices = append(s.devices, d)

	return nil
}

// Len returns the number of devices.
func (s *Schema) Len() int {
	return len(s.ids)
}

// At returns the i-th device in insertion order.
func (s *Schema) At(i int) (string, *Device) {
	return s.ids[i], s.devices[i]
}

// Get looks up a device by path.
func (s *Schema) Get(devicePath string) (*Device, bool) {
	i, ok := s.index[devicePath]
	if !ok {
		return nil, false
	}

	return s.devices[i], true
}
