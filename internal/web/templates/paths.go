package templates

import "strconv"

// Dashboard routes referenced from the markup.
const (
	PathHome       = "/"
	PathFormNew    = "/form/new"
	PathFormField  = "/form/field"
	PathFormSubmit = "/form/submit"
	PathFormCancel = "/form/cancel"
)

func editPath(id int64) string {
	return "/form/edit/" + strconv.FormatInt(id, 10)
}

// DeletePath is the confirmation page of product id.
func DeletePath(id int64) string {
	return "/products/" + strconv.FormatInt(id, 10) + "/delete"
}
