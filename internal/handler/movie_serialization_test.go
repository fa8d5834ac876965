package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cineman/internal/model"
)

func TestSlotSeatsSerializeInDayOrder(t *testing.T) {
	s := slotSeats{
		model.SlotEvening:   20,
		model.SlotMorning:   10,
		model.SlotAfternoon: 0,
	}
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `{"MORNING":10,"AFTERNOON":0,"EVENING":20}`, string(raw))
}

func TestSlotSeatsSkipUnofferedSlots(t *testing.T) {
	s := slotSeats{model.SlotAfternoon: 5}
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `{"AFTERNOON":5}`, string(raw))
}
