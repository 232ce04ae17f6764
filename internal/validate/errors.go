package validate

import "errors"

// ErrRead marks a log file that could not be read. A Result carrying it has
// no diagnostics because validation never started.
var ErrRead = errors.New("cannot read log file")

// Category classifies a diagnostic for programmatic handling.
type Category string

const (
	// CatDateFormat indicates a Date header whose value is not eight digits.
	CatDateFormat Category = "date_format"
	// CatPrematureEnd indicates a block that ended before all headers were seen.
	CatPrematureEnd Category = "premature_end"
	// CatHeaderOrder indicates a header slot holding the wrong kind of line.
	CatHeaderOrder Category = "header_order"
	// CatStatusValue indicates a Status value other than True or False.
	CatStatusValue Category = "status_value"
	// CatGetupFormat indicates a Getup value not shaped HH:MM.
	CatGetupFormat Category = "getup_format"
	// CatGetupRange indicates a Getup time outside 00:00..23:59.
	CatGetupRange Category = "getup_range"
	// CatActivityFormat indicates a line in the activity section that does not match the activity grammar.
	CatActivityFormat Category = "activity_format"
	// CatTimeRange indicates an activity start or end outside 00:00..23:59.
	CatTimeRange Category = "time_range"
	// CatTimeOrder indicates an activity ending before it starts within the same hour.
	CatTimeOrder Category = "time_order"
	// CatLabelTooGeneric indicates a label equal to a bare parent category.
	CatLabelTooGeneric Category = "label_too_generic"
	// CatLabelWrongChild indicates a label not allowed under its parent category.
	CatLabelWrongChild Category = "label_wrong_child"
	// CatLabelUnrecognized indicates a label that matches no parent category.
	CatLabelUnrecognized Category = "label_unrecognized"
	// CatStatusMismatch indicates a Status that disagrees with the day's study activities.
	CatStatusMismatch Category = "status_mismatch"
	// CatLeadingContent indicates content before the first Date header.
	CatLeadingContent Category = "leading_content"
	// CatUnexpectedContent indicates stray content between blocks.
	CatUnexpectedContent Category = "unexpected_content"
	// CatNoDateBlock indicates a non-empty file without a single valid Date header.
	CatNoDateBlock Category = "no_date_block"
)
