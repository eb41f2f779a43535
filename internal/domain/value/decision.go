package value

// Decision is the binary verdict of one evaluation. There is no third state.
type Decision string

const (
	DecisionSell Decision = "SELL"
	DecisionStop Decision = "STOP"
)

func (d Decision) String() string {
	return string(d)
}
