package catalog

func init() {
	Register("arithmetic", func() Catalog {
		return newFloatCatalog("arithmetic", "the four basic operations only", arithmeticActions)
	})
}

var arithmeticActions = []Action{Push4, Add, Sub, Mul, Div}
