package bptree

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestAddOrUpdateFromFactoryUsesMock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFactory := NewMockStringValueFactory(ctrl)

	mockFactory.EXPECT().Add("1", 10).Return("added:10")

	tr2, err := New[string, string](Ordered[string]())
	require.NoError(t, err)

	added, err := AddOrUpdateFromFactory[string, string, int](tr2, "1", 10, mockFactory)
	require.NoError(t, err)
	require.True(t, added)
	v, ok := tr2.TryGet("1")
	require.True(t, ok)
	require.Equal(t, "added:10", v)

	mockFactory.EXPECT().Update("1", 20, "added:10").Return("updated:20")
	added, err = AddOrUpdateFromFactory[string, string, int](tr2, "1", 20, mockFactory)
	require.NoError(t, err)
	require.False(t, added)
	v, _ = tr2.TryGet("1")
	require.Equal(t, "updated:20", v)
}
