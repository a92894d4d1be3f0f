package classes

// WearMethod names one of the three mutually exclusive abrasion tests.
type WearMethod string

const (
	WearBohme        WearMethod = "bohme"
	WearBCA          WearMethod = "bca"
	WearRollingWheel WearMethod = "rolling_wheel"
)

var wearMethods = []WearMethod{WearBohme, WearBCA, WearRollingWheel}

// WearMethods returns the wear-resistance methods in designation precedence.
func WearMethods() []WearMethod {
	return append([]WearMethod(nil), wearMethods...)
}

func (m WearMethod) IsValid() bool {
	switch m {
	case WearBohme, WearBCA, WearRollingWheel:
		return true
	}
	return false
}

// Prefix returns the class token prefix for the method.
func (m WearMethod) Prefix() string {
	switch m {
	case WearBohme:
		return PrefixWearBohme
	case WearBCA:
		return PrefixWearBCA
	case WearRollingWheel:
		return PrefixWearRollingWheel
	}
	return ""
}

// Property returns the class enumeration the method's values belong to.
func (m WearMethod) Property() Property {
	switch m {
	case WearBohme:
		return PropertyWearBohme
	case WearBCA:
		return PropertyWearBCA
	case WearRollingWheel:
		return PropertyWearRollingWheel
	}
	return ""
}

// WearMethodForPrefix resolves a class token prefix to its method.
func WearMethodForPrefix(prefix string) (WearMethod, bool) {
	for _, m := range wearMethods {
		if m.Prefix() == prefix {
			return m, true
		}
	}
	return "", false
}
