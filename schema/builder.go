package schema

import (
	"fmt"

	"github.com/arloliu/tsfile/errs"
	"github.com/arloliu/tsfile/format"
)

// Builder assembles a Schema fluently. Device opens a device scope;
// Measurement adds columns to the most recent one. The first error sticks
// and is reported by Build.
//
// Example:
//
//	sch, err := schema.NewBuilder().
//	    Device("d1").
//	    Measurement("s1", format.TypeInt32, format.EncodingPlain, format.CompressionUncompressed).
//	    Measurement("s2", format.TypeInt64, format.EncodingPlain, format.CompressionUncompressed).
//	    Device("d2").
//	    Measurement("s1", format.TypeFloat, format.EncodingPlain, format.CompressionUncompressed).
//	    Build()
type Builder struct {
	schema  *Schema
	current *Device
	err     error
}

// NewBuilder creates an empty schema builder.
func NewBuilder() *Builder {
	return &Builder{
		schema: New(),
	}
}

// Device opens a new device scope; subsequent Measurement calls add to it.
func (b *Builder) Device(devicePath string) *Builder {
	if b.err != nil {
		return b
	}

	d := NewDevice()
	if err := b.schema.Add(devicePath, d); err != nil {
		b.err = err
		return b
	}

	b.current = d

	return b
}

// Measurement adds a column to the device opened by the preceding Device
// call.
func (b *Builder) Measurement(measurementID string, dataType format.DataType, enc format.Encoding, comp format.Compression) *Builder {
	if b.err != nil {
		return b
	}

	if b.current == nil {
		b.err = fmt.Errorf("%w: measurement %q declared before any device", errs.ErrNoDeviceScope, measurementID)
		return b
	}

	if err := b.current.Add(measurementID, NewMeasurementSchema(dataType, enc, comp)); err != nil {
		b.err = err
	}

	return b
}

// AddDevice registers a pre-built device (typically from a DeviceBuilder)
// under its path and makes it the current scope for further Measurement
// calls.
func (b *Builder) AddDevice(devicePath string, d *Device) *Builder {
	if b.err != nil {
		return b
	}

	if d == nil {
		b.err = fmt.Errorf("%w: nil device for %q", errs.ErrNoDeviceScope, devicePath)
		return b
	}

	if err := b.schema.Add(devicePath, d); err != nil {
		b.err = err
		return b
	}

	b.current = d

	return b
}

// Build returns the assembled schema, or the first error encountered.
func (b *Builder) Build() (*Schema, error) {
	if b.err != nil {
		return nil, b.err
	}

	return b.schema, nil
}

// DeviceBuilder assembles a single Device fluently, for the two-level
// construction style where devices are built separately and attached to a
// schema afterwards:
//
//	dev, err := schema.NewDeviceBuilder().
//	    Add("s1", format.TypeInt32, format.EncodingPlain, format.CompressionUncompressed).
//	    Add("s2", format.TypeInt64, format.EncodingPlain, format.CompressionUncompressed).
//	    Build()
//
// The result attaches through Schema.Add or Builder.AddDevice. The first
// error sticks and is reported by Build.
type DeviceBuilder struct {
	device *Device
	err    error
}

// NewDeviceBuilder creates an empty device builder.
func NewDeviceBuilder() *DeviceBuilder {
	return &DeviceBuilder{
		device: NewDevice(),
	}
}

// Add declares one measurement column.
func (b *DeviceBuilder) Add(measurementID string, dataType format.DataType, enc format.Encoding, comp format.Compression) *DeviceBuilder {
	if b.err != nil {
		return b
	}

	if err := b.device.Add(measurementID, NewMeasurementSchema(dataType, enc, comp)); err != nil {
		b.err = err
	}

	return b
}

// Build returns the assembled device, or the first error encountered.
func (b *DeviceBuilder) Build() (*Device, error) {
	if b.err != nil {
		return nil, b.err
	}

	return b.device, nil
}
