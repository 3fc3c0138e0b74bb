package valuenet

// Train fits net to records with plain online SGD (no third-party
// optimizer exists anywhere in the retrieval pack, and a hand-rolled
// Adam is out of proportion to what the spec actually requires of
// this component; see DESIGN.md). It returns the per-epoch mean loss,
// matching the custom loss in spec §4.5:
// mean_h[(v1-t1)^2 + (v2-t2)^2] + z^2.
func Train(net *Network, records []Record, epochs int, lr float64) []float64 {
	losses := make([]float64, epochs)
	for e := 0; e < epochs; e++ {
		var total float64
		for _, rec := range records {
			total += trainStep(net, rec, lr)
		}
		if len(records) > 0 {
			total /= float64(len(records))
		}
		losses[e] = total
	}
	return losses
}

func trainStep(net *Network, rec Record, lr float64) float64 {
	x0 := rec.Flatten()[:net.inputSize()]

	var pre, post [][]float64
	x := x0
	for _, l := range net.Trunk {
		p := l.forward(x)
		a := relu(p)
		pre = append(pre, p)
		post = append(post, a)
		x = a
	}
	h3 := x

	v1 := net.P1.forward(h3)
	v2 := net.P2.forward(h3)

	r1 := x0[:net.H]
	r2 := x0[len(x0)-net.H:]
	var z float64
	for i := 0; i < net.H; i++ {
		z += r1[i]*v1[i] - r2[i]*v2[i]
	}

	var loss float64
	dv1 := make([]float64, net.H)
	dv2 := make([]float64, net.H)
	for h := 0; h < net.H; h++ {
		e1 := v1[h] - rec.T1[h]
		e2 := v2[h] - rec.T2[h]
		loss += e1*e1 + e2*e2
		dv1[h] = (2.0/float64(net.H))*e1 + 2*z*r1[h]
		dv2[h] = (2.0/float64(net.H))*e2 - 2*z*r2[h]
	}
	loss = loss/float64(net.H) + z*z

	dh3 := make([]float64, len(h3))
	updateLinear(&net.P1, h3, dv1, dh3, lr)
	updateLinear(&net.P2, h3, dv2, dh3, lr)

	dOut := dh3
	for i := len(net.Trunk) - 1; i >= 0; i-- {
		dPre := make([]float64, len(pre[i]))
		for j, p := range pre[i] {
			if p > 0 {
				dPre[j] = dOut[j]
			}
		}
		var input []float64
		if i == 0 {
			input = x0
		} else {
			input = post[i-1]
		}
		dIn := make([]float64, len(input))
		updateLinear(&net.Trunk[i], input, dPre, dIn, lr)
		dOut = dIn
	}

	return loss
}

// updateLinear applies one SGD step to layer l given its forward
// input x and the loss gradient w.r.t. its output dOut, and
// accumulates the gradient w.r.t. x into dIn (added to, so two heads
// sharing the same trunk output both contribute).
func updateLinear(l *layer, x, dOut, dIn []float64, lr float64) {
	for i, d := range dOut {
		if d == 0 {
			continue
		}
		row := l.Weights[i]
		for j, xv := range x {
			dIn[j] += row[j] * d
			row[j] -= lr * d * xv
		}
		l.Bias[i] -= lr * d
	}
}
