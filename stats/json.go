package stats

import "github.com/launchdarkly/go-jsonstream/v3/jwriter"

// WriteJSON streams a Snapshot's fields through
// github.com/launchdarkly/go-jsonstream/v3/jwriter rather than the
// reflection-based encoding/json the rest of the ecosystem defaults to.
func (s Snapshot) WriteJSON(obj *jwriter.ObjectState) {
	obj.Name("TotalAllocations").Int(int(s.TotalAllocations))
	obj.Name("TotalDeallocations").Int(int(s.TotalDeallocations))
	obj.Name("BytesAllocated").Int(int(s.BytesAllocated))
	obj.Name("BytesDeallocated").Int(int(s.BytesDeallocated))
	obj.Name("LiveAllocations").Int(int(s.LiveAllocations))
	obj.Name("LiveBytes").Int(int(s.LiveBytes))
}

// MarshalJSON lets a Snapshot plug into code that already expects
// json.Marshaler, driving the same jwriter.Writer the rest of the
// package uses under the hood.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	w := jwriter.NewWriter()
	obj := w.Object()
	s.WriteJSON(&obj)
	obj.End()
	return w.Bytes(), w.Error()
}
