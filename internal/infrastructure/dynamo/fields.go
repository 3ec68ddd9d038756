package dynamo

// Attribute names referenced from update and key-condition expressions.
const (
	fieldEnable    = "enable"
	fieldName      = "name"
	fieldEmail     = "email"
	fieldUpdatedAt = "updated_at"
	fieldCreatedBy = "created_by"
)
