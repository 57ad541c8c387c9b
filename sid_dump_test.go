// sid_dump_test.go - SIDR wire format round trips and error paths

package sidplayfp

import (
	"bytes"
	"compress/gzip"
	"testing"
)

func testDump() *SIDDump {
	return &SIDDump{
		Model:        MODEL_6581,
		ClockHz:      SID_CLOCK_PAL,
		SampleRate:   44100,
		TotalSamples: 88200,
		LoopSample:   44100,
		Loop:         true,
		Events: []SIDEvent{
			{Sample: 0, Reg: SID_REG_FREQ_HI, Value: 0x1c},
			{Sample: 0, Reg: SID_REG_CONTROL, Value: SID_CTRL_SAWTOOTH | SID_CTRL_GATE},
			{Sample: 882, Reg: SID_REG_FREQ_HI, Value: 0x21},
			{Sample: 70000, Reg: SID_REG_MODE_VOL, Value: 0x00},
		},
	}
}

func TestSIDDump_RoundTrip(t *testing.T) {
	want := testDump()
	data, err := EncodeSIDDump(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := ParseSIDDump(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Model != want.Model || got.ClockHz != want.ClockHz ||
		got.SampleRate != want.SampleRate || got.TotalSamples != want.TotalSamples ||
		got.LoopSample != want.LoopSample || got.Loop != want.Loop {
		t.Errorf("header mismatch: %+v vs %+v", got, want)
	}
	if len(got.Events) != len(want.Events) {
		t.Fatalf("event count = %d, want %d", len(got.Events), len(want.Events))
	}
	for i := range got.Events {
		if got.Events[i] != want.Events[i] {
			t.Errorf("event %d = %+v, want %+v", i, got.Events[i], want.Events[i])
		}
	}
}

func TestSIDDump_GzipTransparent(t *testing.T) {
	data, err := EncodeSIDDump(testDump())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	gz.Write(data)
	gz.Close()

	got, err := ParseSIDDump(buf.Bytes())
	if err != nil {
		t.Fatalf("parse gzip: %v", err)
	}
	if len(got.Events) != 4 || got.Events[3].Sample != 70000 {
		t.Error("gzip round trip lost events")
	}
}

func TestSIDDump_RejectsBadInput(t *testing.T) {
	cases := map[string][]byte{
		"empty":       nil,
		"short":       []byte("SIDR"),
		"bad magic":   bytes.Repeat([]byte{0x41}, sidDumpHeaderSize),
		"bad version": append([]byte("SIDR\x07"), make([]byte, sidDumpHeaderSize-5)...),
	}
	for name, data := range cases {
		if _, err := ParseSIDDump(data); err == nil {
			t.Errorf("%s: expected parse error", name)
		}
	}

	// Header claims more events than the payload carries.
	good, _ := EncodeSIDDump(testDump())
	if _, err := ParseSIDDump(good[:len(good)-3]); err == nil {
		t.Error("truncated events: expected parse error")
	}
}

func TestSIDDump_EncodeRejectsUnorderedEvents(t *testing.T) {
	d := testDump()
	d.Events[2].Sample = 0x10000000
	d.Events[3].Sample = 5
	if _, err := EncodeSIDDump(d); err == nil {
		t.Error("expected error for out-of-order events")
	}
}

func TestSIDDump_FileRoundTrip(t *testing.T) {
	path := t.TempDir() + "/tune.sidr"
	if err := WriteSIDDumpFile(path, testDump()); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := LoadSIDDumpFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TotalSamples != 88200 || len(got.Events) != 4 {
		t.Error("file round trip lost data")
	}
}
