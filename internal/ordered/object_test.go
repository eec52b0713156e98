package ordered

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObject_PreservesInsertionOrder(t *testing.T) {
	o := New().Set("title", "GP2040-CE").Set("url", "https://gp2040-ce.info").Set("baseUrl", "/")
	o.Set("title", "GP2040-CE Docs")

	data, err := json.Marshal(o)
	require.NoError(t, err)
	require.Equal(t, `{"title":"GP2040-CE Docs","url":"https://gp2040-ce.info","baseUrl":"/"}`, string(data))
	require.Equal(t, []string{"title", "url", "baseUrl"}, o.Keys())
}

func TestObject_SetNonZero(t *testing.T) {
	o := New().
		SetNonZero("empty", "").
		SetNonZero("off", false).
		SetNonZero("none", []any{}).
		SetNonZero("child", New()).
		SetNonZero("on", true)

	require.Equal(t, []string{"on"}, o.Keys())
}

func TestObject_Nested(t *testing.T) {
	inner := New().Set("b", 2).Set("a", 1)
	o := New().Set("inner", inner).Set("list", []any{inner})

	data, err := json.Marshal(o)
	require.NoError(t, err)
	require.Equal(t, `{"inner":{"b":2,"a":1},"list":[{"b":2,"a":1}]}`, string(data))
}
