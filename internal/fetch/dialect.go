package fetch

// A command pairs a CLI query with the parser that extracts a value from
// its output. Chains are ordered: the first command whose parse yields a
// non-empty string wins, the rest are skipped.
//
// Two dialects are covered. Dialect A devices answer labelled summary
// commands ("show hostname", "show hardware"); dialect B devices expose the
// same facts through the running config and version output. A chain mixes
// both so one fetcher works against either family without knowing which it
// is talking to.
type command struct {
	cmd   string
	parse func(output string) string
}

// hostnameChain extracts the configured hostname.
var hostnameChain = []command{
	// Dialect A: "Hostname: X" label, or a bare token on boxes that
	// print just the name.
	{cmd: "show hostname", parse: parseHostnameSummary},
	// Dialect B: the hostname line of the running config.
	{cmd: "show running-config | include ^hostname", parse: parseHostnameConfig},
}

// modelChain extracts the chassis model.
var modelChain = []command{
	// Dialect B: "Model Number: X" in version output.
	{cmd: "show version", parse: parseModelNumber},
	// Dialect A: "Model number is X" in the hardware summary.
	{cmd: "show hardware", parse: parseModelNumberIs},
	// Either: the module table, skipping supervisor/fabric rows, or a
	// product-family code anywhere in the text.
	{cmd: "show module", parse: parseModelFromModules},
}
