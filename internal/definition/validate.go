package definition

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

func (k PrimitiveKind) valid() bool {
	switch k {
	case Integer, Number, String, Boolean, File, Object:
		return true
	}
	return false
}

// Validate checks that every descriptor resolves: complex references name an
// existing model, enum references an existing enum, and primitives a known
// kind. It also checks parameter placement. All defects are reported
// together, in deterministic order.
func (d *Definition) Validate() error {
	var result *multierror.Error
	check := func(subject string, desc *Descriptor) {
		if err := d.checkDescriptor(subject, desc); err != nil {
			result = multierror.Append(result, err)
		}
	}

	for _, name := range d.ModelNames() {
		model := d.Models[name]
		if model == nil {
			continue
		}
		for pair := model.Oldest(); pair != nil; pair = pair.Next() {
			check(fmt.Sprintf("models.%s.%s", name, pair.Key), pair.Value)
		}
	}

	for _, name := range d.EnumNames() {
		if len(d.Enums[name]) == 0 {
			result = multierror.Append(result, &SchemaError{
				Subject: "enums." + name,
				Detail:  "enum has no values",
			})
		}
	}

	for _, svcName := range d.ServiceNames() {
		svc := d.Services[svcName]
		for _, opName := range svc.OperationNames() {
			op := svc[opName]
			subject := fmt.Sprintf("services.%s.%s", svcName, opName)
			if op == nil {
				result = multierror.Append(result, &SchemaError{Subject: subject, Detail: "operation is empty"})
				continue
			}
			bodies := 0
			for _, p := range op.Parameters {
				psub := fmt.Sprintf("%s.parameters.%s", subject, p.Name)
				if !p.Kind.valid() {
					result = multierror.Append(result, &SchemaError{
						Subject: psub,
						Detail:  fmt.Sprintf("unknown parameter type %q", p.Kind),
					})
				}
				if p.Kind == InBody {
					bodies++
				}
				check(psub, p.DataType)
			}
			if bodies > 1 {
				result = multierror.Append(result, &SchemaError{
					Subject: subject,
					Detail:  fmt.Sprintf("operation declares %d body parameters", bodies),
				})
			}
			if op.Responses == nil {
				continue
			}
			for pair := op.Responses.Oldest(); pair != nil; pair = pair.Next() {
				if pair.Value == nil || pair.Value.DataType == nil {
					continue
				}
				check(fmt.Sprintf("%s.responses.%s", subject, pair.Key), pair.Value.DataType)
			}
		}
	}

	return result.ErrorOrNil()
}

func (d *Definition) checkDescriptor(subject string, desc *Descriptor) error {
	if desc == nil {
		return &SchemaError{Subject: subject, Detail: "missing data type"}
	}
	switch t := desc.Type.(type) {
	case Primitive:
		if !t.Kind.valid() {
			return &SchemaError{Subject: subject, Detail: fmt.Sprintf("unknown primitive %q", t.Kind), Descriptor: desc}
		}
	case ModelRef:
		if _, ok := d.Models[t.Name]; !ok {
			return &SchemaError{Subject: subject, Detail: fmt.Sprintf("unknown model %q", t.Name), Descriptor: desc}
		}
	case EnumRef:
		if _, ok := d.Enums[t.Name]; !ok {
			return &SchemaError{Subject: subject, Detail: fmt.Sprintf("unknown enum %q", t.Name), Descriptor: desc}
		}
	default:
		return &SchemaError{Subject: subject, Detail: "descriptor has no type", Descriptor: desc}
	}
	return nil
}
