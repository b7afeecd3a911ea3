package style

import (
	"cmp"

	"github.com/rotisserie/eris"

	"github.com/mapstack/geoviz-cli/internal/coerce"
)

// RuleDef is the declarative form of a rule, as written in a map document.
// Operand values are strings and are coerced with the layer's declared
// attribute type when the definition is compiled.
type RuleDef struct {
	Name   string   `yaml:"name"`
	Op     string   `yaml:"op"`
	Value  string   `yaml:"value"`
	Values []string `yaml:"values"`
	Min    string   `yaml:"min"`
	Max    string   `yaml:"max"`
	Color  string   `yaml:"color"`
	Size   float64  `yaml:"size"`
}

// Compile turns declarative rule definitions into a typed rule set.
// Operands are coerced once here, so a bad operand is a configuration
// error surfaced before any record is evaluated.
func Compile[T cmp.Ordered](defs []RuleDef, coerceFn coerce.Func[T]) (RuleSet[T], error) {
	rules := make(RuleSet[T], 0, len(defs))

	for i, def := range defs {
		pred, err := compilePredicate(i, def, coerceFn)
		if err != nil {
			return nil, err
		}
		rules = append(rules, Rule[T]{
			Name:  def.Name,
			When:  pred,
			Style: Style{Color: def.Color, Size: def.Size},
		})
	}

	return rules, nil
}

func compilePredicate[T cmp.Ordered](i int, def RuleDef, coerceFn coerce.Func[T]) (Predicate[T], error) {
	switch def.Op {
	case "eq", "ne", "lt", "le", "gt", "ge":
		operand, err := coerceOperand(i, def, def.Value, coerceFn)
		if err != nil {
			return nil, err
		}
		switch def.Op {
		case "eq":
			return Eq(operand), nil
		case "ne":
			return NotEq(operand), nil
		case "lt":
			return LessThan(operand), nil
		case "le":
			return AtMost(operand), nil
		case "gt":
			return GreaterThan(operand), nil
		default:
			return AtLeast(operand), nil
		}

	case "in":
		if len(def.Values) == 0 {
			return nil, eris.Errorf("style: rule %d (%s): op in requires values", i, ruleLabel(def.Name))
		}
		operands := make([]T, 0, len(def.Values))
		for _, raw := range def.Values {
			operand, err := coerceOperand(i, def, raw, coerceFn)
			if err != nil {
				return nil, err
			}
			operands = append(operands, operand)
		}
		return OneOf(operands...), nil

	case "between":
		lo, err := coerceOperand(i, def, def.Min, coerceFn)
		if err != nil {
			return nil, err
		}
		hi, err := coerceOperand(i, def, def.Max, coerceFn)
		if err != nil {
			return nil, err
		}
		return Between(lo, hi), nil

	case "any":
		return Always[T](), nil

	default:
		return nil, eris.Errorf("style: rule %d (%s): unknown op %q", i, ruleLabel(def.Name), def.Op)
	}
}

func coerceOperand[T cmp.Ordered](i int, def RuleDef, raw string, coerceFn coerce.Func[T]) (T, error) {
	operand, err := coerceFn(raw)
	if err != nil {
		return operand, eris.Wrapf(err, "style: rule %d (%s): operand %q", i, ruleLabel(def.Name), raw)
	}
	return operand, nil
}
