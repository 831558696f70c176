package script

import (
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestToGo_Scalars(t *testing.T) {
	tests := []struct {
		name string
		in   lua.LValue
		want any
	}{
		{"bool", lua.LTrue, true},
		{"integer", lua.LNumber(42), int64(42)},
		{"float", lua.LNumber(1.5), 1.5},
		{"string", lua.LString("hi"), "hi"},
		{"nil", lua.LNil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toGo(tt.in); got != tt.want {
				t.Errorf("toGo(%v) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestToGo_ArrayTable(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	tbl := L.NewTable()
	tbl.RawSetInt(1, lua.LString("a"))
	tbl.RawSetInt(2, lua.LString("b"))

	got, ok := toGo(tbl).([]any)
	if !ok {
		t.Fatalf("expected []any, got %T", toGo(tbl))
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("expected [a b], got %v", got)
	}
}

func TestToGo_MapTable(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	tbl := L.NewTable()
	tbl.RawSetString("name", lua.LString("pulse"))
	tbl.RawSetString("count", lua.LNumber(3))

	got, ok := toGo(tbl).(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", toGo(tbl))
	}
	if got["name"] != "pulse" || got["count"] != int64(3) {
		t.Errorf("unexpected map: %v", got)
	}
}

func TestToGo_CircularTable(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	tbl := L.NewTable()
	tbl.RawSetString("self", tbl)

	got, ok := toGo(tbl).(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", toGo(tbl))
	}
	if got["self"] != nil {
		t.Errorf("expected circular reference to break to nil, got %v", got["self"])
	}
}

func TestToLua_RoundTrip(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	in := map[string]any{
		"name":  "pulse",
		"count": 3,
		"tags":  []any{"a", "b"},
		"ok":    true,
	}

	out, ok := toGo(toLua(L, in)).(map[string]any)
	if !ok {
		t.Fatal("round trip did not produce a map")
	}
	if out["name"] != "pulse" || out["count"] != int64(3) || out["ok"] != true {
		t.Errorf("unexpected round trip result: %v", out)
	}
	tags, ok := out["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "a" {
		t.Errorf("unexpected tags: %v", out["tags"])
	}
}

func TestToLua_Userdata(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	type opaque struct{ n int }
	in := &opaque{n: 7}

	lv := toLua(L, in)
	ud, ok := lv.(*lua.LUserData)
	if !ok {
		t.Fatalf("expected userdata, got %T", lv)
	}
	if ud.Value != in {
		t.Error("expected userdata to carry the original value")
	}
}

func TestToLua_Error(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	lv := toLua(L, errTest{})
	if lv != lua.LString("test error") {
		t.Errorf("expected errors to bridge as strings, got %v", lv)
	}
}

type errTest struct{}

func (errTest) Error() string { return "test error" }
