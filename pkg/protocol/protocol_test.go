package protocol

import (
	"encoding/json"
	"testing"
)

func TestRequestScaleDefault(t *testing.T) {
	var r Request
	if err := json.Unmarshal([]byte(`{"tex":"\\(x\\)"}`), &r); err != nil {
		t.Fatal(err)
	}
	if r.Tex != `\(x\)` {
		t.Errorf("Tex = %q", r.Tex)
	}
	if r.Scale != nil {
		t.Errorf("Scale = %v, want nil", *r.Scale)
	}
	if got := r.ScaleOrDefault(); got != 1.0 {
		t.Errorf("ScaleOrDefault() = %v, want 1", got)
	}

	if err := json.Unmarshal([]byte(`{"tex":"x","scale":2.5}`), &r); err != nil {
		t.Fatal(err)
	}
	if got := r.ScaleOrDefault(); got != 2.5 {
		t.Errorf("ScaleOrDefault() = %v, want 2.5", got)
	}
}

func TestRequestEncoding(t *testing.T) {
	data, err := json.Marshal(NewRequest("a", 2))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"tex":"a","scale":2}` {
		t.Errorf("Marshal = %s", data)
	}

	data, _ = json.Marshal(Request{Tex: "a"})
	if string(data) != `{"tex":"a"}` {
		t.Errorf("Marshal without scale = %s", data)
	}
}

func TestResponseEncoding(t *testing.T) {
	data, _ := json.Marshal(Success("<svg></svg>"))
	if string(data) != `{"svg":"<svg></svg>"}` {
		t.Errorf("Success = %s", data)
	}

	data, _ = json.Marshal(Failure(MethodNotAllowedMessage))
	if string(data) != `{"error":"Only POST is allowed."}` {
		t.Errorf("Failure = %s", data)
	}
}

func TestResponseValidate(t *testing.T) {
	svg, msg := "<svg/>", "boom"
	tests := []struct {
		name    string
		resp    Response
		wantErr bool
	}{
		{"success", Success(svg), false},
		{"failure", Failure(msg), false},
		{"both", Response{SVG: &svg, Error: &msg}, true},
		{"neither", Response{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.resp.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResponseErr(t *testing.T) {
	if err := Success("x").Err(); err != nil {
		t.Errorf("Success.Err() = %v", err)
	}
	if err := Failure("bad tex").Err(); err == nil || err.Error() != "bad tex" {
		t.Errorf("Failure.Err() = %v", err)
	}
	if err := (Response{}).Err(); err == nil || err.Error() != UnknownErrorMessage {
		t.Errorf("empty Err() = %v", err)
	}
	if err := Failure("").Err(); err == nil || err.Error() != UnknownErrorMessage {
		t.Errorf("empty message Err() = %v", err)
	}
}
