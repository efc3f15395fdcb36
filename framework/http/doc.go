// Package http provides Laravel-style request and response helpers around
// form validation.
//
// # Request
//
//	req := gohttp.NewRequest(r)
//
//	form, err := req.Form()   // validation.Form from JSON, urlencoded or multipart
//	id := req.RouteParam("form")
//
// Form keys ending in "[]" (tags[]=a&tags[]=b) and repeated keys become
// sequences.
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.Success(data)          // 200 {"data": ...}
//	res.Error(400, "bad")      // {"message": "bad"}
//	res.NotFound()             // 404 {"message": "Not found."}
//	res.ValidationError(v)     // 422 {"errors": {...}, "values": {...}}
package http
