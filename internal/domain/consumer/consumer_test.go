package consumer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConsumer(t *testing.T) {
	t.Run("creates consumer successfully", func(t *testing.T) {
		c, err := NewConsumer("Asha Rao", "9876543210", "12-B", "Lakeview", "Pune", "MH", "411001", "MTR-0042")

		require.NoError(t, err)
		assert.NotNil(t, c)
		assert.Equal(t, "Asha Rao", c.Name)
		assert.Equal(t, "MTR-0042", c.MeterNumber)
		assert.Equal(t, "Pune", c.City)
		assert.Equal(t, 1, c.Version)
	})

	t.Run("trims whitespace from fields", func(t *testing.T) {
		c, err := NewConsumer("  Asha Rao ", " 9876543210 ", " 12-B ", "", "", "", "", " MTR-0042 ")

		require.NoError(t, err)
		assert.Equal(t, "Asha Rao", c.Name)
		assert.Equal(t, "9876543210", c.Phone)
		assert.Equal(t, "12-B", c.HouseNumber)
		assert.Equal(t, "MTR-0042", c.MeterNumber)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		c, err := NewConsumer("", "9876543210", "", "", "", "", "", "MTR-0042")

		assert.Error(t, err)
		assert.Nil(t, c)
		assert.Contains(t, err.Error(), "consumer name is required")
	})

	t.Run("fails with empty meter number", func(t *testing.T) {
		c, err := NewConsumer("Asha Rao", "9876543210", "", "", "", "", "", "  ")

		assert.Error(t, err)
		assert.Nil(t, c)
		assert.Contains(t, err.Error(), "meter number is required")
	})

	t.Run("fails with empty phone", func(t *testing.T) {
		c, err := NewConsumer("Asha Rao", "", "", "", "", "", "", "MTR-0042")

		assert.Error(t, err)
		assert.Nil(t, c)
		assert.Contains(t, err.Error(), "phone is required")
	})
}

func TestConsumerUpdate(t *testing.T) {
	newConsumer := func(t *testing.T) *Consumer {
		c, err := NewConsumer("Asha Rao", "9876543210", "12-B", "Lakeview", "Pune", "MH", "411001", "MTR-0042")
		require.NoError(t, err)
		return c
	}

	t.Run("applies non-empty fields", func(t *testing.T) {
		c := newConsumer(t)

		err := c.Update("Asha R.", "", "", "", "Mumbai", "", "400001")

		require.NoError(t, err)
		assert.Equal(t, "Asha R.", c.Name)
		assert.Equal(t, "Mumbai", c.City)
		assert.Equal(t, "400001", c.Pincode)
		assert.Equal(t, 2, c.Version)
	})

	t.Run("keeps existing values for empty fields", func(t *testing.T) {
		c := newConsumer(t)

		err := c.Update("", "", "", "", "", "", "")

		require.NoError(t, err)
		assert.Equal(t, "Asha Rao", c.Name)
		assert.Equal(t, "9876543210", c.Phone)
	})

	t.Run("meter number survives updates", func(t *testing.T) {
		c := newConsumer(t)

		require.NoError(t, c.Update("New Name", "", "", "", "", "", ""))

		assert.Equal(t, "MTR-0042", c.MeterNumber)
	})
}
