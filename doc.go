// Package formdata flattens nested values into ordered multipart form fields.
//
// A [Mapping] of [Value]s is encoded into a [Form]: a sequence of fields named
// in bracket notation (user[id], tags[0]) whose order follows the traversal
// of the input. Files are carried as single fields and never decomposed.
// Ordinary Go values can be converted with [ValueOf] or encoded directly with
// [Marshal], and a [Form] can be written as a multipart/form-data body with
// [Encoder] or attached to an [net/http.Request] with [NewRequest].
package formdata
