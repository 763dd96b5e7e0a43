package logging

// Field names shared by every log entry of the application.
const (
	FieldOperation   = "operation"
	FieldStatus      = "status"
	FieldReason      = "reason"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldBankCode    = "bank_code"
	FieldLayout      = "layout"
	FieldLotCount    = "lot_count"
	FieldTotalAmount = "total_amount"
	FieldNossoNumero = "nosso_numero"
	FieldCharset     = "charset"
	FieldBarcode     = "barcode"
)
