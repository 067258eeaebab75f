// Package httputil provides the JSON body helpers shared by the texsvg
// server and client.
//
// # Overview
//
//   - [ReadBody]: buffer a complete request or response body
//   - [DecodeJSON]: parse a buffered body into a message
//   - [WriteJSON]: send a message with a status code
//
// Bodies are always read in full before parsing. A limit of zero means the
// body size is unbounded:
//
//	data, err := httputil.ReadBody(r.Body, 0)
//	if err != nil {
//	    return err
//	}
//	var req protocol.Request
//	if err := httputil.DecodeJSON(data, &req); err != nil {
//	    return err
//	}
//
// Responses are encoded without HTML escaping so that rendered markup
// travels as written:
//
//	httputil.WriteJSON(w, http.StatusOK, protocol.Success(svg))
package httputil
