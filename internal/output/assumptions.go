package output

// DefaultAssumptions lists the modeling assumptions rendered in detailed outputs
var DefaultAssumptions = []string{
	"Monthly deductions are annualized over 12 months",
	"Rent is used only for new-regime rent relief, not as a statutory deduction",
	"CRA applies to the old regime only; rent relief applies to the new regime only",
	"Negative amounts are treated as zero",
}
